package usecase_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: un almacén en memoria compartido por todos los UnitOfWork de
// un caso, con la misma semántica que la implementación de PostgreSQL: las
// lecturas excluyen filas borradas, Add/Update/Delete solo preparan la
// mutación y SaveChanges la aplica; el borrado convierte en is_deleted = TRUE
// y falla con ErrNotFound si la fila ya no está viva.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	categories     map[int64]*entity.Category
	products       map[int64]*entity.Product
	nextCategoryID int64
	nextProductID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories:     make(map[int64]*entity.Category),
		products:       make(map[int64]*entity.Product),
		nextCategoryID: 1,
		nextProductID:  1,
	}
}

type fakeUoW struct {
	store *fakeStore
	ops   []func() error
}

func (u *fakeUoW) Categories() repository.CategoryRepository { return &fakeCategoryRepo{uow: u} }
func (u *fakeUoW) Products() repository.ProductRepository    { return &fakeProductRepo{uow: u} }

func (u *fakeUoW) SaveChanges() error {
	for _, op := range u.ops {
		if err := op(); err != nil {
			return err
		}
	}
	u.ops = nil
	return nil
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) New() repository.UnitOfWork {
	return &fakeUoW{store: f.store}
}

// ───────────────────────────── categorías ─────────────────────────────

type fakeCategoryRepo struct {
	uow *fakeUoW
}

func (r *fakeCategoryRepo) live() []*entity.Category {
	var out []*entity.Category
	for _, c := range r.uow.store.categories {
		if !c.IsDeleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCategoryRepo) GetAll() ([]*entity.Category, error) { return r.live(), nil }

func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.uow.store.categories[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetPaged(page, pageSize int) ([]*entity.Category, int, error) {
	all := r.live()
	return pageOf(all, page, pageSize), len(all), nil
}

func (r *fakeCategoryRepo) GetPagedSorted(page, pageSize int) ([]*entity.Category, int, error) {
	all := r.live()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Order != all[j].Order {
			return all[i].Order < all[j].Order
		}
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return pageOf(all, page, pageSize), len(all), nil
}

func (r *fakeCategoryRepo) NameExists(name string, excludeID int64) (bool, error) {
	for _, c := range r.uow.store.categories {
		if !c.IsDeleted && c.Name == name && (excludeID == 0 || c.ID != excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Exists(id int64) (bool, error) {
	c, ok := r.uow.store.categories[id]
	return ok && !c.IsDeleted, nil
}

func (r *fakeCategoryRepo) Count() (int, error) { return len(r.live()), nil }

func (r *fakeCategoryRepo) Add(category *entity.Category) {
	store := r.uow.store
	r.uow.ops = append(r.uow.ops, func() error {
		category.ID = store.nextCategoryID
		store.nextCategoryID++
		cp := *category
		store.categories[cp.ID] = &cp
		return nil
	})
}

func (r *fakeCategoryRepo) Update(category *entity.Category) {
	store := r.uow.store
	cp := *category
	r.uow.ops = append(r.uow.ops, func() error {
		store.categories[cp.ID] = &cp
		return nil
	})
}

func (r *fakeCategoryRepo) Delete(id int64) {
	store := r.uow.store
	r.uow.ops = append(r.uow.ops, func() error {
		c, ok := store.categories[id]
		if !ok || c.IsDeleted {
			return fmt.Errorf("soft delete categories id %d: %w", id, domain.ErrNotFound)
		}
		c.IsDeleted = true
		return nil
	})
}

// ───────────────────────────── productos ─────────────────────────────

type fakeProductRepo struct {
	uow *fakeUoW
}

func (r *fakeProductRepo) withCategory(p *entity.Product) *entity.ProductWithCategory {
	out := &entity.ProductWithCategory{Product: *p}
	if c, ok := r.uow.store.categories[p.CategoryID]; ok && !c.IsDeleted {
		out.CategoryName = c.Name
	}
	return out
}

func (r *fakeProductRepo) liveWithCategory() []*entity.ProductWithCategory {
	var out []*entity.ProductWithCategory
	for _, p := range r.uow.store.products {
		if !p.IsDeleted {
			out = append(out, r.withCategory(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.uow.store.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetAllWithCategory() ([]*entity.ProductWithCategory, error) {
	return r.liveWithCategory(), nil
}

func (r *fakeProductRepo) GetByIDWithCategory(id int64) (*entity.ProductWithCategory, error) {
	p, ok := r.uow.store.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	return r.withCategory(p), nil
}

func (r *fakeProductRepo) GetPagedWithCategory(page, pageSize int) ([]*entity.ProductWithCategory, int, error) {
	all := r.liveWithCategory()
	return pageOf(all, page, pageSize), len(all), nil
}

func (r *fakeProductRepo) GetByCategoryID(categoryID int64) ([]*entity.ProductWithCategory, error) {
	var out []*entity.ProductWithCategory
	for _, p := range r.liveWithCategory() {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ExistsByCategory(categoryID int64) (bool, error) {
	for _, p := range r.uow.store.products {
		if !p.IsDeleted && p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Exists(id int64) (bool, error) {
	p, ok := r.uow.store.products[id]
	return ok && !p.IsDeleted, nil
}

func (r *fakeProductRepo) Count() (int, error) {
	n := 0
	for _, p := range r.uow.store.products {
		if !p.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Add(product *entity.Product) {
	store := r.uow.store
	r.uow.ops = append(r.uow.ops, func() error {
		product.ID = store.nextProductID
		store.nextProductID++
		cp := *product
		store.products[cp.ID] = &cp
		return nil
	})
}

func (r *fakeProductRepo) Update(product *entity.Product) {
	store := r.uow.store
	cp := *product
	r.uow.ops = append(r.uow.ops, func() error {
		store.products[cp.ID] = &cp
		return nil
	})
}

func (r *fakeProductRepo) Delete(id int64) {
	store := r.uow.store
	r.uow.ops = append(r.uow.ops, func() error {
		p, ok := store.products[id]
		if !ok || p.IsDeleted {
			return fmt.Errorf("soft delete products id %d: %w", id, domain.ErrNotFound)
		}
		p.IsDeleted = true
		return nil
	})
}

func pageOf[T any](all []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// ───────────────────────────── caché ─────────────────────────────

// fakeCache implementa el puerto de caché con contadores para verificar
// aciertos e invalidaciones.
type fakeCache struct {
	items         map[string]dto.CategoryResponse
	lists         map[string][]dto.CategoryResponse
	hits          int
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		items: make(map[string]dto.CategoryResponse),
		lists: make(map[string][]dto.CategoryResponse),
	}
}

func (f *fakeCache) Get(key string) (*dto.CategoryResponse, bool) {
	item, ok := f.items[key]
	if !ok {
		return nil, false
	}
	f.hits++
	return &item, true
}

func (f *fakeCache) Set(key string, item dto.CategoryResponse) { f.items[key] = item }

func (f *fakeCache) GetList(key string) ([]dto.CategoryResponse, bool) {
	list, ok := f.lists[key]
	if !ok {
		return nil, false
	}
	f.hits++
	return list, true
}

func (f *fakeCache) SetList(key string, items []dto.CategoryResponse) { f.lists[key] = items }

func (f *fakeCache) Invalidate() {
	f.items = make(map[string]dto.CategoryResponse)
	f.lists = make(map[string][]dto.CategoryResponse)
	f.invalidations++
}

// ───────────────────────────── fixture ─────────────────────────────

type fixture struct {
	store      *fakeStore
	cache      *fakeCache
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
}

func newFixture() *fixture {
	store := newFakeStore()
	cache := newFakeCache()
	factory := &fakeFactory{store: store}
	return &fixture{
		store:      store,
		cache:      cache,
		categories: usecase.NewCategoryUseCase(factory, cache),
		products:   usecase.NewProductUseCase(factory),
	}
}

func (f *fixture) mustCreateCategory(t *testing.T, name string, order int) dto.CategoryResponse {
	t.Helper()
	out, err := f.categories.Create(dto.CreateCategoryRequest{Name: name, Order: order})
	require.NoError(t, err)
	require.NotNil(t, out)
	return *out
}

func (f *fixture) mustCreateProduct(t *testing.T, title string, price float64, categoryID int64) dto.ProductResponse {
	t.Helper()
	out, err := f.products.Create(dto.CreateProductRequest{
		Title:      title,
		Author:     "Autor de Prueba",
		Price:      decimal.NewFromFloat(price),
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return *out
}
