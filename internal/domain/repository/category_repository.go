package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las lecturas excluyen los registros con is_deleted = TRUE.
// Add, Update y Delete solo preparan la mutación; se aplica en
// UnitOfWork.SaveChanges.
type CategoryRepository interface {
	GetAll() ([]*entity.Category, error)
	// GetByID devuelve nil, nil si la categoría no existe o está borrada.
	GetByID(id int64) (*entity.Category, error)
	GetPaged(page, pageSize int) ([]*entity.Category, int, error)
	// GetPagedSorted ordena por cat_order, luego cat_name y luego id, para
	// que entradas iguales produzcan siempre la misma página.
	GetPagedSorted(page, pageSize int) ([]*entity.Category, int, error)
	// NameExists verifica unicidad del nombre entre categorías no borradas.
	// excludeID = 0 significa sin exclusión; en updates se pasa el propio id
	// para que una categoría pueda conservar su nombre.
	NameExists(name string, excludeID int64) (bool, error)
	Exists(id int64) (bool, error)
	Count() (int, error)
	Add(category *entity.Category)
	Update(category *entity.Category)
	Delete(id int64)
}
