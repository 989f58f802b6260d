package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opDelete
)

// stagedOp una mutación preparada pendiente de commit. Para opDelete solo se
// guardan tabla e id: la conversión a borrado lógico ocurre en SaveChanges,
// no en el repositorio que la preparó.
type stagedOp struct {
	kind  opKind
	table string
	id    int64                                      // solo para opDelete
	apply func(ctx context.Context, tx pgx.Tx) error // nil para opDelete
}

// plan acumula las mutaciones de un UnitOfWork en el orden en que se
// prepararon.
type plan struct {
	ops []stagedOp
}

func (p *plan) add(op stagedOp) {
	p.ops = append(p.ops, op)
}

func (p *plan) isEmpty() bool {
	return len(p.ops) == 0
}

func (p *plan) reset() {
	p.ops = nil
}
