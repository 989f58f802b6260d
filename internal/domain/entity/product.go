package entity

import "github.com/shopspring/decimal"

// Product representa un libro del catálogo.
type Product struct {
	ID          int64
	Title       string          // requerido, máx. 50
	Description string          // opcional, máx. 250
	Author      string          // requerido, máx. 50
	Price       decimal.Decimal // debe estar en [1, 1000] inclusive
	IsDeleted   bool
	CategoryID  int64 // FK a categories; debe apuntar a una categoría no borrada
}

// ProductWithCategory proyección de lectura con el nombre de la categoría
// resuelto vía LEFT JOIN. CategoryName queda vacío si la categoría ya no
// existe: una referencia colgante nunca hace fallar la lectura.
type ProductWithCategory struct {
	Product
	CategoryName string
}
