package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	maxTitleLen       = 50
	maxDescriptionLen = 250
	maxAuthorLen      = 50
)

var (
	minPrice = decimal.NewFromInt(1)
	maxPrice = decimal.NewFromInt(1000)
)

// ProductUseCase casos de uso para productos (libros). Las lecturas nunca se
// cachean y siempre resuelven la categoría en la misma consulta. Cada método
// crea su propio UnitOfWork.
type ProductUseCase struct {
	uowFactory repository.UnitOfWorkFactory
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(f repository.UnitOfWorkFactory) *ProductUseCase {
	return &ProductUseCase{uowFactory: f}
}

// List devuelve una página de productos con el nombre de su categoría, más el
// total de productos vivos. page < 1 se normaliza a 1 y pageSize < 1 a 5.
func (uc *ProductUseCase) List(page, pageSize int) ([]dto.ProductResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	uow := uc.uowFactory.New()
	total, err := uow.Products().Count()
	if err != nil {
		return nil, 0, err
	}
	list, _, err := uow.Products().GetPagedWithCategory(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return items, total, nil
}

// GetByID obtiene un producto con su categoría resuelta. Devuelve nil, nil si
// no existe o está borrado.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.uowFactory.New().Products().GetByIDWithCategory(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	return &out, nil
}

// GetByCategory lista los productos vivos de una categoría.
func (uc *ProductUseCase) GetByCategory(categoryID int64) ([]dto.ProductResponse, error) {
	list, err := uc.uowFactory.New().Products().GetByCategoryID(categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return items, nil
}

// Create crea un producto. Falla con ErrCategoryNotExists si la categoría
// referenciada no existe o está borrada, y con ErrInvalidInput si algún campo
// viola sus reglas (precio fuera de [1, 1000], títulos largos, etc.).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(in.Title, in.Description, in.Author, in.Price); err != nil {
		return nil, err
	}

	uow := uc.uowFactory.New()
	ok, err := uow.Categories().Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("categoría %d: %w", in.CategoryID, domain.ErrCategoryNotExists)
	}

	product := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	uow.Products().Add(product)
	if err := uow.SaveChanges(); err != nil {
		return nil, err
	}

	// Releer con la categoría resuelta para la respuesta.
	created, err := uow.Products().GetByIDWithCategory(product.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("releer producto %d: %w", product.ID, domain.ErrNotFound)
	}
	out := toProductResponse(created)
	return &out, nil
}

// Update reemplaza los campos mutables sobre la entidad leída, con las mismas
// verificaciones de Create. Devuelve nil, nil si el producto no existe.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(in.Title, in.Description, in.Author, in.Price); err != nil {
		return nil, err
	}

	uow := uc.uowFactory.New()
	product, err := uow.Products().GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	ok, err := uow.Categories().Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("categoría %d: %w", in.CategoryID, domain.ErrCategoryNotExists)
	}

	mergeProduct(product, in)
	uow.Products().Update(product)
	if err := uow.SaveChanges(); err != nil {
		return nil, err
	}

	updated, err := uow.Products().GetByIDWithCategory(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("releer producto %d: %w", id, domain.ErrNotFound)
	}
	out := toProductResponse(updated)
	return &out, nil
}

// Patch aplica un documento RFC 6902 en dos fases: materializa el estado
// actual en una proyección actualizable, aplica ahí las operaciones, revalida
// la proyección resultante completa (rango de precio, categoría, campos) y
// solo entonces la fusiona sobre la entidad y hace commit. Aplicar el patch
// directo sobre la entidad persistida saltaría la validación de entrada
// parcial del caller. Devuelve nil, nil si el producto no existe.
func (uc *ProductUseCase) Patch(id int64, patchDoc []byte) (*dto.ProductResponse, error) {
	uow := uc.uowFactory.New()
	product, err := uow.Products().GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	projection := dto.UpdateProductRequest{
		Title:       product.Title,
		Description: product.Description,
		Author:      product.Author,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
	}
	current, err := json.Marshal(projection)
	if err != nil {
		return nil, fmt.Errorf("serializar proyección: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("documento patch malformado: %w", domain.ErrInvalidInput)
	}
	patched, err := patch.Apply(current)
	if err != nil {
		return nil, fmt.Errorf("aplicar patch: %w", domain.ErrInvalidInput)
	}

	// DisallowUnknownFields rechaza operaciones add sobre rutas que no
	// existen en la proyección.
	var in dto.UpdateProductRequest
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("ruta de patch desconocida: %w", domain.ErrInvalidInput)
	}

	if err := validateProductFields(in.Title, in.Description, in.Author, in.Price); err != nil {
		return nil, err
	}
	ok, err := uow.Categories().Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("categoría %d: %w", in.CategoryID, domain.ErrCategoryNotExists)
	}

	mergeProduct(product, in)
	uow.Products().Update(product)
	if err := uow.SaveChanges(); err != nil {
		return nil, err
	}

	updated, err := uow.Products().GetByIDWithCategory(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("releer producto %d: %w", id, domain.ErrNotFound)
	}
	out := toProductResponse(updated)
	return &out, nil
}

// Delete marca el producto como borrado. Falla con ErrNotFound si no hay uno
// vivo con ese ID. Los productos no tienen guarda referencial: nada depende
// de ellos.
func (uc *ProductUseCase) Delete(id int64) error {
	uow := uc.uowFactory.New()
	product, err := uow.Products().GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	uow.Products().Delete(id)
	return uow.SaveChanges()
}

// TotalCount devuelve el total de productos vivos.
func (uc *ProductUseCase) TotalCount() (int, error) {
	return uc.uowFactory.New().Products().Count()
}

func validateProductFields(title, description, author string, price decimal.Decimal) error {
	if title == "" {
		return fmt.Errorf("title es requerido: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("title supera %d caracteres: %w", maxTitleLen, domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf("description supera %d caracteres: %w", maxDescriptionLen, domain.ErrInvalidInput)
	}
	if author == "" {
		return fmt.Errorf("author es requerido: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return fmt.Errorf("author supera %d caracteres: %w", maxAuthorLen, domain.ErrInvalidInput)
	}
	// Rango inclusivo: 1 y 1000 son precios válidos.
	if price.LessThan(minPrice) || price.GreaterThan(maxPrice) {
		return fmt.Errorf("price debe estar entre 1 y 1000: %w", domain.ErrInvalidInput)
	}
	return nil
}

func mergeProduct(product *entity.Product, in dto.UpdateProductRequest) {
	product.Title = in.Title
	product.Description = in.Description
	product.Author = in.Author
	product.Price = in.Price
	product.CategoryID = in.CategoryID
}

func toProductResponse(p *entity.ProductWithCategory) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Author:       p.Author,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}
