// file: internals/helpers/pagination.go
package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// MaxPage caps the page number so the offset cannot overflow.
const MaxPage = 1_000_000

// NewPaging normalises a 1-indexed page and a page size. perPage <= 0 falls
// back to defaultPerPage; maxPerPage > 0 caps it.
func NewPaging(page, perPage, defaultPerPage, maxPerPage int) Paging {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	if perPage > math.MaxInt/MaxPage {
		perPage = math.MaxInt / MaxPage
	}
	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

// ResolvePaging membaca ?page= & ?page_size= (alias ?per_page= / ?limit=).
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))

	raw := ""
	for _, key := range []string{"page_size", "per_page", "limit"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			raw = v
			break
		}
	}
	perPage, _ := strconv.Atoi(raw)

	return NewPaging(page, perPage, defaultPerPage, maxPerPage)
}

// TotalPages is ceil(total/perPage), never below 1.
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	n := int((total + int64(perPage) - 1) / int64(perPage))
	if n == 0 {
		return 1
	}
	return n
}

func BuildPaginationFromPage(total int64, page, perPage int) Pagination {
	p := NewPaging(page, perPage, 10, 0)
	totalPages := TotalPages(total, p.PerPage)
	return Pagination{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
