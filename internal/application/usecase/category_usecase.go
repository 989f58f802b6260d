package usecase

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const (
	defaultPageSize = 5
	maxNameLen      = 50
)

// Claves de caché derivadas de la forma de la consulta.
func categoriesPageKey(page, pageSize int) string {
	return fmt.Sprintf("categories_page_%d_size_%d", page, pageSize)
}

func categoryKey(id int64) string {
	return fmt.Sprintf("category_%d", id)
}

// CategoryUseCase casos de uso CRUD para categorías, con caché read-through
// de 30 minutos sobre los listados y las lecturas por ID. Cada método crea su
// propio UnitOfWork: una operación, un ámbito de transacción.
type CategoryUseCase struct {
	uowFactory repository.UnitOfWorkFactory
	cache      CategoryCache
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(f repository.UnitOfWorkFactory, cache CategoryCache) *CategoryUseCase {
	return &CategoryUseCase{uowFactory: f, cache: cache}
}

// List devuelve una página de categorías ordenadas por cat_order y nombre,
// más el total de categorías vivas (consultado aparte, independiente de la
// página, para que los metadatos reflejen la colección completa).
// page < 1 se normaliza a 1 y pageSize < 1 a 5.
func (uc *CategoryUseCase) List(page, pageSize int) ([]dto.CategoryResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	uow := uc.uowFactory.New()
	total, err := uow.Categories().Count()
	if err != nil {
		return nil, 0, err
	}

	key := categoriesPageKey(page, pageSize)
	if items, ok := uc.cache.GetList(key); ok {
		return items, total, nil
	}

	list, _, err := uow.Categories().GetPagedSorted(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	uc.cache.SetList(key, items)
	return items, total, nil
}

// GetByID busca primero en caché y luego en el repositorio. Devuelve nil, nil
// si la categoría no existe o está borrada.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryResponse, error) {
	key := categoryKey(id)
	if item, ok := uc.cache.Get(key); ok {
		return item, nil
	}

	category, err := uc.uowFactory.New().Categories().GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	item := toCategoryResponse(category)
	uc.cache.Set(key, item)
	return &item, nil
}

// Create crea una categoría. Falla con ErrDuplicate si ya existe una viva con
// el mismo nombre. El ID y la fecha de creación los asigna el sistema.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategoryName(in.Name); err != nil {
		return nil, err
	}

	uow := uc.uowFactory.New()
	exists, err := uow.Categories().NameExists(in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("categoría %q: %w", in.Name, domain.ErrDuplicate)
	}

	category := &entity.Category{
		Name:      in.Name,
		Order:     in.Order,
		CreatedAt: time.Now().UTC(),
	}
	uow.Categories().Add(category)
	if err := uow.SaveChanges(); err != nil {
		return nil, err
	}
	uc.cache.Invalidate()

	out := toCategoryResponse(category)
	return &out, nil
}

// Update reemplaza los campos mutables sobre la entidad leída: el ID y la
// fecha de creación se preservan siempre. Devuelve nil, nil si no existe;
// falla con ErrDuplicate si otra categoría viva ya usa el nombre.
func (uc *CategoryUseCase) Update(id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategoryName(in.Name); err != nil {
		return nil, err
	}

	uow := uc.uowFactory.New()
	category, err := uow.Categories().GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}

	// Se excluye el propio id: la categoría puede conservar su nombre.
	exists, err := uow.Categories().NameExists(in.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("categoría %q: %w", in.Name, domain.ErrDuplicate)
	}

	category.Name = in.Name
	category.Order = in.Order
	uow.Categories().Update(category)
	if err := uow.SaveChanges(); err != nil {
		return nil, err
	}
	uc.cache.Invalidate()

	out := toCategoryResponse(category)
	return &out, nil
}

// Delete marca la categoría como borrada. Falla con ErrNotFound si no hay una
// viva con ese ID (borrar dos veces no es idempotente silencioso) y con
// ErrCategoryInUse si todavía tiene productos vivos.
func (uc *CategoryUseCase) Delete(id int64) error {
	uow := uc.uowFactory.New()
	category, err := uow.Categories().GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}

	inUse, err := uow.Products().ExistsByCategory(id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("categoría %d: %w", id, domain.ErrCategoryInUse)
	}

	uow.Categories().Delete(id)
	if err := uow.SaveChanges(); err != nil {
		return err
	}
	uc.cache.Invalidate()
	return nil
}

// TotalCount devuelve el total de categorías vivas.
func (uc *CategoryUseCase) TotalCount() (int, error) {
	return uc.uowFactory.New().Categories().Count()
}

func validateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("cat_name es requerido: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("cat_name supera %d caracteres: %w", maxNameLen, domain.ErrInvalidInput)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
	}
}
