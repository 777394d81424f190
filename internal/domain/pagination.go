package domain

// Pagination es el estado de paginado de una vista de lista.
type Pagination struct {
	PageIndex  int    `json:"pageIndex"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalRow   int    `json:"totalRow"`
	Keyword    string `json:"keyword"`
}

// DefaultPagination es el estado inicial de todas las listas.
func DefaultPagination() Pagination {
	return Pagination{PageIndex: 1, PageSize: 10}
}
