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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// selectProductWithCategory trae el producto junto con el nombre de su
// categoría. LEFT JOIN: una referencia a una categoría borrada no hace fallar
// la lectura, solo deja el nombre vacío.
const selectProductWithCategory = `
	SELECT p.id, p.title, COALESCE(p.description, ''), p.author, p.price,
	       p.is_deleted, p.category_id, COALESCE(c.cat_name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id AND c.is_deleted = FALSE
	WHERE p.is_deleted = FALSE`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Lee contra el Querier (pool o tx) y prepara las escrituras en el plan del
// UnitOfWork. Todas las lecturas filtran is_deleted = FALSE.
type ProductRepo struct {
	q    Querier
	plan *plan
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier, pl *plan) *ProductRepo {
	return &ProductRepo{q: q, plan: pl}
}

// GetByID obtiene un producto vivo por ID, sin resolver la categoría.
// Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), author, price, is_deleted, category_id
		FROM products WHERE id = $1 AND is_deleted = FALSE`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Author, &p.Price, &p.IsDeleted, &p.CategoryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetAllWithCategory devuelve todos los productos vivos con su categoría resuelta.
func (r *ProductRepo) GetAllWithCategory() ([]*entity.ProductWithCategory, error) {
	rows, err := r.q.Query(context.Background(), selectProductWithCategory+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProductsWithCategory(rows)
}

// GetByIDWithCategory obtiene un producto vivo con su categoría resuelta.
// Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByIDWithCategory(id int64) (*entity.ProductWithCategory, error) {
	var p entity.ProductWithCategory
	err := r.q.QueryRow(context.Background(), selectProductWithCategory+` AND p.id = $1`, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Author, &p.Price,
		&p.IsDeleted, &p.CategoryID, &p.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with category: %w", err)
	}
	return &p, nil
}

// GetPagedWithCategory devuelve una página de productos con categoría más el
// total de productos vivos (independiente de la página).
func (r *ProductRepo) GetPagedWithCategory(page, pageSize int) ([]*entity.ProductWithCategory, int, error) {
	total, err := r.Count()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(context.Background(),
		selectProductWithCategory+` ORDER BY p.id LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("page products: %w", err)
	}
	defer rows.Close()
	list, err := scanProductsWithCategory(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetByCategoryID filtra por foreign key, con la categoría resuelta por
// consistencia con los demás caminos de lectura.
func (r *ProductRepo) GetByCategoryID(categoryID int64) ([]*entity.ProductWithCategory, error) {
	rows, err := r.q.Query(context.Background(),
		selectProductWithCategory+` AND p.category_id = $1 ORDER BY p.id`, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("products by category: %w", err)
	}
	defer rows.Close()
	return scanProductsWithCategory(rows)
}

// ExistsByCategory indica si la categoría tiene productos vivos.
func (r *ProductRepo) ExistsByCategory(categoryID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1 AND is_deleted = FALSE)`,
		categoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("products exist by category: %w", err)
	}
	return exists, nil
}

// Exists indica si hay un producto vivo con ese ID.
func (r *ProductRepo) Exists(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND is_deleted = FALSE)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// Count cuenta los productos vivos.
func (r *ProductRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE is_deleted = FALSE`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Add prepara la inserción; el ID lo asigna la base en el commit y se escribe
// de vuelta en la entidad.
func (r *ProductRepo) Add(product *entity.Product) {
	r.plan.add(stagedOp{kind: opInsert, table: "products", apply: func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO products (title, description, author, price, is_deleted, category_id)
			 VALUES ($1, $2, $3, $4, FALSE, $5) RETURNING id`,
			product.Title, product.Description, product.Author, product.Price, product.CategoryID,
		).Scan(&product.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("categoría %d: %w", product.CategoryID, domain.ErrCategoryNotExists)
			}
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	}})
}

// Update prepara el reemplazo de los campos mutables.
func (r *ProductRepo) Update(product *entity.Product) {
	r.plan.add(stagedOp{kind: opUpdate, table: "products", apply: func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE products SET title = $2, description = $3, author = $4, price = $5, category_id = $6
			 WHERE id = $1`,
			product.ID, product.Title, product.Description, product.Author, product.Price, product.CategoryID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("categoría %d: %w", product.CategoryID, domain.ErrCategoryNotExists)
			}
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	}})
}

// Delete prepara el borrado. El UnitOfWork lo convierte en is_deleted = TRUE
// al hacer commit; el que llama debe verificar existencia antes.
func (r *ProductRepo) Delete(id int64) {
	r.plan.add(stagedOp{kind: opDelete, table: "products", id: id})
}

func scanProductsWithCategory(rows pgx.Rows) ([]*entity.ProductWithCategory, error) {
	var list []*entity.ProductWithCategory
	for rows.Next() {
		var p entity.ProductWithCategory
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Author, &p.Price,
			&p.IsDeleted, &p.CategoryID, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
