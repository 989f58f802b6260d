package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, cat_name, cat_order, created_at, is_deleted`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// Lee contra el Querier (pool o tx) y prepara las escrituras en el plan del
// UnitOfWork. Todas las lecturas filtran is_deleted = FALSE.
type CategoryRepo struct {
	q    Querier
	plan *plan
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier, pl *plan) *CategoryRepo {
	return &CategoryRepo{q: q, plan: pl}
}

// GetAll devuelve todas las categorías no borradas.
func (r *CategoryRepo) GetAll() ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_deleted = FALSE ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

// GetByID obtiene una categoría viva por ID. Devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND is_deleted = FALSE`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Order, &c.CreatedAt, &c.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetPaged devuelve una página por orden de ID más el total de categorías vivas.
func (r *CategoryRepo) GetPaged(page, pageSize int) ([]*entity.Category, int, error) {
	return r.paged(page, pageSize, `ORDER BY id`)
}

// GetPagedSorted devuelve una página ordenada por cat_order, cat_name e id.
// El id al final hace el orden total: entradas iguales producen siempre la
// misma página.
func (r *CategoryRepo) GetPagedSorted(page, pageSize int) ([]*entity.Category, int, error) {
	return r.paged(page, pageSize, `ORDER BY cat_order, cat_name, id`)
}

func (r *CategoryRepo) paged(page, pageSize int, orderBy string) ([]*entity.Category, int, error) {
	total, err := r.Count()
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_deleted = FALSE ` +
		orderBy + ` LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("page categories: %w", err)
	}
	defer rows.Close()
	list, err := scanCategories(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// NameExists verifica unicidad del nombre entre categorías vivas.
// excludeID = 0 significa sin exclusión.
func (r *CategoryRepo) NameExists(name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM categories
		WHERE cat_name = $1 AND is_deleted = FALSE AND ($2 = 0 OR id <> $2)
	)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("category name exists: %w", err)
	}
	return exists, nil
}

// Exists indica si hay una categoría viva con ese ID.
func (r *CategoryRepo) Exists(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND is_deleted = FALSE)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return exists, nil
}

// Count cuenta las categorías vivas.
func (r *CategoryRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM categories WHERE is_deleted = FALSE`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

// Add prepara la inserción; el ID lo asigna la base en el commit y se escribe
// de vuelta en la entidad.
func (r *CategoryRepo) Add(category *entity.Category) {
	r.plan.add(stagedOp{kind: opInsert, table: "categories", apply: func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO categories (cat_name, cat_order, created_at, is_deleted)
			 VALUES ($1, $2, $3, FALSE) RETURNING id`,
			category.Name, category.Order, category.CreatedAt,
		).Scan(&category.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("categoría %q: %w", category.Name, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert category: %w", err)
		}
		return nil
	}})
}

// Update prepara el reemplazo de los campos mutables. created_at no se toca.
func (r *CategoryRepo) Update(category *entity.Category) {
	r.plan.add(stagedOp{kind: opUpdate, table: "categories", apply: func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE categories SET cat_name = $2, cat_order = $3 WHERE id = $1`,
			category.ID, category.Name, category.Order,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("categoría %q: %w", category.Name, domain.ErrDuplicate)
			}
			return fmt.Errorf("update category: %w", err)
		}
		return nil
	}})
}

// Delete prepara el borrado. El UnitOfWork lo convierte en is_deleted = TRUE
// al hacer commit; el que llama debe verificar existencia antes.
func (r *CategoryRepo) Delete(id int64) {
	r.plan.add(stagedOp{kind: opDelete, table: "categories", id: id})
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Order, &c.CreatedAt, &c.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
