package service

import (
	"sync"

	"rental-admin/internal/domain"
)

// ListState sincroniza el paginado de una vista de lista con el backend.
type ListState struct {
	mu sync.Mutex
	p  domain.Pagination
}

func NewListState() *ListState {
	return &ListState{p: domain.DefaultPagination()}
}

// SetPage fija pagina y keyword. Paginas menores a 1 se tratan como 1.
func (l *ListState) SetPage(pageIndex int, keyword string) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	l.mu.Lock()
	l.p.PageIndex = pageIndex
	l.p.Keyword = keyword
	l.mu.Unlock()
}

func (l *ListState) SetPageSize(size int) {
	if size < 1 {
		return
	}
	l.mu.Lock()
	l.p.PageSize = size
	l.mu.Unlock()
}

// Params devuelve los parametros para la proxima consulta.
func (l *ListState) Params() domain.Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p
}

// Apply registra el total devuelto por el backend y recalcula totalPages.
func (l *ListState) Apply(totalRow int) domain.Pagination {
	if totalRow < 0 {
		totalRow = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.p.TotalRow = totalRow
	l.p.TotalPages = (totalRow + l.p.PageSize - 1) / l.p.PageSize
	return l.p
}
