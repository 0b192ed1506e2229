// Package queryparams listeleme uç noktalarının sayfalama, filtreleme ve
// sıralama parametrelerini tutar.
package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
	DefaultSortBy  = "created_at"
)

// ListParams sorgu dizgisinden okunan liste parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Name    string `query:"name"`   // başlık/ad araması
	Status  string `query:"status"` // "true" / "false"
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
}

// DefaultListParams varsayılan değerlerle parametre oluşturur.
func DefaultListParams(sortBy string) ListParams {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate geçersiz değerleri varsayılanlara çeker.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Status != "true" && p.Status != "false" {
		p.Status = ""
	}
}

// CalculateOffset SQL OFFSET değeri.
func (p ListParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta liste cevaplarındaki sayfa bilgisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult sayfalanmış liste cevabı.
type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages toplam sayfa sayısı.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(perPage) - 1) / int64(perPage))
}

// NewPaginatedResult veri ve toplam sayıdan sonuç oluşturur.
func NewPaginatedResult(data any, totalItems int64, params ListParams) *PaginatedResult {
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalItems,
			TotalPages:  CalculateTotalPages(totalItems, params.PerPage),
		},
	}
}
