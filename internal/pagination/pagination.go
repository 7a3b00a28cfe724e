// Package pagination holds page arithmetic shared by the reference server's
// list endpoints and the client-side table controller.
package pagination

import (
	"gorm.io/gorm"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 50

// PageRequest holds pagination parameters.
// A zero Page means the caller asked for the whole collection.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PageQuery is the query-string form of a PageRequest. The fields are
// pointers so that an explicit page=0 fails min=1 instead of reading as absent.
type PageQuery struct {
	Page     *int `json:"page" form:"page" binding:"omitempty,min=1"`
	PageSize *int `json:"page_size" form:"page_size" binding:"omitempty,min=1,max=500"`
}

// Request converts the bound query into a PageRequest; absent keys stay zero.
func (q PageQuery) Request() PageRequest {
	var req PageRequest
	if q.Page != nil {
		req.Page = *q.Page
	}
	if q.PageSize != nil {
		req.PageSize = *q.PageSize
	}
	return req
}

// Requested reports whether a page window was asked for.
func (p *PageRequest) Requested() bool {
	return p.Page > 0 || p.PageSize > 0
}

// Defaults fills in default values when page or page_size are not provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps a page of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
// TotalPages is displayed as at least 1.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: max(1, TotalPages(int(totalItems), pageSize)),
	}
}

// TotalPages returns ceil(n/size), or 0 for an empty collection.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Window returns items[(page-1)*size : page*size], clipped to the slice
// bounds. Out-of-range pages give an empty window.
func Window[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
