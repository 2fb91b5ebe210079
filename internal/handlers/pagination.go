package handlers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds one page of a listing plus its navigation cursors.
// Every listing surface (frontpage, tag page, user page) shares the same
// page size and ordering, so they all build one of these.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	BaseURL     string
}

// ParsePage interprets the "page" query parameter. Absent, non-numeric or
// non-positive values all mean page 1.
func ParsePage(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page
}

// NewPagination builds the cursors for the given page of totalItems items.
func NewPagination(currentPage, perPage int, totalItems int64, baseURL string) Pagination {
	totalPages := int(math.Ceil(float64(totalItems) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		BaseURL:     baseURL,
	}
}

// Offset returns the row offset of the current page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

// PrevURL returns the URL of the previous page, or "" at the boundary.
func (p Pagination) PrevURL() string {
	if !p.HasPrev {
		return ""
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, p.CurrentPage-1)
}

// NextURL returns the URL of the next page, or "" at the boundary.
func (p Pagination) NextURL() string {
	if !p.HasNext {
		return ""
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, p.CurrentPage+1)
}

// ShouldShow reports whether pagination controls are worth rendering.
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}
