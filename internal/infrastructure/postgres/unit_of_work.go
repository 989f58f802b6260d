package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
var _ repository.UnitOfWorkFactory = (*Factory)(nil)

// UnitOfWork implementación del puerto sobre pgx. Una instancia por operación
// de servicio: sus repositorios leen contra el pool y preparan las escrituras
// en un plan compartido que SaveChanges aplica en una sola transacción.
type UnitOfWork struct {
	pool       *pgxpool.Pool
	plan       *plan
	categories *CategoryRepo
	products   *ProductRepo
}

// NewUnitOfWork construye el unit of work con sus repositorios atados al
// mismo plan pendiente.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	pl := &plan{}
	return &UnitOfWork{
		pool:       pool,
		plan:       pl,
		categories: NewCategoryRepository(pool, pl),
		products:   NewProductRepository(pool, pl),
	}
}

func (u *UnitOfWork) Categories() repository.CategoryRepository { return u.categories }
func (u *UnitOfWork) Products() repository.ProductRepository    { return u.products }

// SaveChanges aplica el plan en una transacción: o entran todas las
// mutaciones o ninguna. Los deletes preparados se convierten aquí, y solo
// aquí, en UPDATE ... SET is_deleted = TRUE; los repositorios no conocen el
// borrado lógico. Un delete cuya fila ya no está viva reporta not found.
func (u *UnitOfWork) SaveChanges() error {
	if u.plan.isEmpty() {
		return nil
	}
	ctx := context.Background()
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, op := range u.plan.ops {
		if op.kind == opDelete {
			cmd, err := tx.Exec(ctx,
				fmt.Sprintf(`UPDATE %s SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, op.table),
				op.id,
			)
			if err != nil {
				return fmt.Errorf("soft delete %s: %w", op.table, err)
			}
			if cmd.RowsAffected() == 0 {
				return fmt.Errorf("soft delete %s id %d: %w", op.table, op.id, domain.ErrNotFound)
			}
			continue
		}
		if err := op.apply(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	u.plan.reset()
	return nil
}

// Factory crea un UnitOfWork nuevo por operación de servicio.
type Factory struct {
	pool *pgxpool.Pool
}

// NewFactory construye la fábrica con el pool.
func NewFactory(pool *pgxpool.Pool) *Factory {
	return &Factory{pool: pool}
}

func (f *Factory) New() repository.UnitOfWork {
	return NewUnitOfWork(f.pool)
}
