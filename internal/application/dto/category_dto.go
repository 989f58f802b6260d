package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name  string `json:"cat_name" validate:"required,min=1,max=50"`
	Order int    `json:"cat_order"`
}

// UpdateCategoryRequest reemplazo completo de los campos mutables. El ID y la
// fecha de creación nunca vienen del caller.
type UpdateCategoryRequest struct {
	Name  string `json:"cat_name" validate:"required,min=1,max=50"`
	Order int    `json:"cat_order"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"cat_name"`
	Order     int       `json:"cat_order"`
	CreatedAt time.Time `json:"created_at"`
}
