package usecase

import "github.com/jhoicas/catalogo-api/internal/application/dto"

// CategoryCache puerto de caché read-through para DTOs de categoría.
// Los productos no pasan por aquí: sus lecturas llevan el nombre de la
// categoría desnormalizado y quedarían viejas de forma independiente.
type CategoryCache interface {
	Get(key string) (*dto.CategoryResponse, bool)
	Set(key string, item dto.CategoryResponse)
	GetList(key string) ([]dto.CategoryResponse, bool)
	SetList(key string, items []dto.CategoryResponse)
	// Invalidate descarta todas las entradas; se llama tras cada mutación
	// exitosa de categorías.
	Invalidate()
}
