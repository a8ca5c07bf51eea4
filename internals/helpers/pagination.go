package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Pagination type & defaults
=================================*/

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

/* ===============================
   Paging resolver (query → page/limit/offset)
=================================*/

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePaging membaca ?page= & ?limit= (alias ?per_page=) lalu normalisasi.
// Page 1-indexed; limit default kalau kosong/invalid; maxLimit 0 = tanpa batas.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	if page < 1 {
		page = 1
	}

	limitStr := strings.TrimSpace(c.Query("limit"))
	if limitStr == "" {
		limitStr = strings.TrimSpace(c.Query("per_page", strconv.Itoa(defaultLimit)))
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Paging{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// BuildPagination menghitung total_pages = ceil(total/limit).
// Page di luar rentang tetap sah: data kosong, bukan error.
func BuildPagination(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit)) // ceil
	return Pagination{
		Page:       page,
		PerPage:    limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}
