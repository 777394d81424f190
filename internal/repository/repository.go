package repository

import (
	"net/url"
	"strconv"

	"rental-admin/internal/domain"
)

// pageQuery arma los parametros de los endpoints phan-trang-tim-kiem.
func pageQuery(p domain.Pagination) url.Values {
	q := url.Values{}
	q.Set("pageIndex", strconv.Itoa(p.PageIndex))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}

func idPath(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}
