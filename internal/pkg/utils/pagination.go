package utils

import (
	"math"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/responses"
)

func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = constvars.PaginationDefaultPage
	}
	if limit < 1 {
		limit = constvars.PaginationDefaultLimit
	}
	if limit > constvars.PaginationMaxLimit {
		limit = constvars.PaginationMaxLimit
	}
	// (page-1)*limit must stay a valid skip; such a page is empty anyway
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// PaginationSkip is the number of documents before page.
func PaginationSkip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}

func BuildPagination(page, limit int, total int64) responses.Pagination {
	return responses.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
