package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las variantes WithCategory resuelven el nombre de la categoría en la misma
// consulta para que el servicio lo proyecte al DTO sin un viaje extra.
type ProductRepository interface {
	// GetByID devuelve nil, nil si el producto no existe o está borrado.
	GetByID(id int64) (*entity.Product, error)
	GetAllWithCategory() ([]*entity.ProductWithCategory, error)
	GetByIDWithCategory(id int64) (*entity.ProductWithCategory, error)
	GetPagedWithCategory(page, pageSize int) ([]*entity.ProductWithCategory, int, error)
	GetByCategoryID(categoryID int64) ([]*entity.ProductWithCategory, error)
	// ExistsByCategory indica si la categoría tiene productos no borrados
	// (guarda de integridad antes de borrar una categoría).
	ExistsByCategory(categoryID int64) (bool, error)
	Exists(id int64) (bool, error)
	Count() (int, error)
	Add(product *entity.Product)
	Update(product *entity.Product)
	Delete(id int64)
}
