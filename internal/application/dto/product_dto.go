package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto (libro).
type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=50"`
	Description string          `json:"description" validate:"max=250"`
	Author      string          `json:"author" validate:"required,min=1,max=50"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
}

// UpdateProductRequest reemplazo completo de los campos mutables. También es
// la proyección sobre la que se aplican los documentos patch (RFC 6902) antes
// de revalidar: el patch nunca toca la entidad persistida directamente.
type UpdateProductRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=50"`
	Description string          `json:"description" validate:"max=250"`
	Author      string          `json:"author" validate:"required,min=1,max=50"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
}

// ProductResponse salida de un producto con el nombre de la categoría
// desnormalizado (vacío si la categoría ya no existe).
type ProductResponse struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Author       string          `json:"author"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
}
