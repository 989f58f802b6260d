package domain

import "errors"

// Errores de dominio (sin dependencias externas). Son resultados esperados de
// la lógica de negocio y el caller debe poder distinguirlos entre sí; las
// fallas de infraestructura viajan como errores envueltos normales y el
// handler HTTP las convierte en 500 con mensaje opaco.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("el nombre de categoría ya existe")
	ErrCategoryInUse     = errors.New("la categoría tiene productos asociados")
	ErrCategoryNotExists = errors.New("la categoría referenciada no existe")
	ErrInvalidInput      = errors.New("entrada inválida")
)
