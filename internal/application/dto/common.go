package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination metadatos de página para las respuestas v2.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula los metadatos a partir del total completo de la
// colección, no del tamaño de la página devuelta.
func NewPagination(page, pageSize, totalCount int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, TotalCount: totalCount, TotalPages: totalPages}
}
