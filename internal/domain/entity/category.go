package entity

import "time"

// Category representa una categoría del catálogo de libros.
// No guarda referencias vivas a sus productos: la relación se consulta
// por category_id cuando hace falta.
type Category struct {
	ID        int64
	Name      string // único entre categorías no borradas, máx. 50
	Order     int    // orden de presentación en listados
	CreatedAt time.Time
	IsDeleted bool
}
