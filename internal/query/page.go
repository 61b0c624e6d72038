package query

import (
	"context"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PageRequest carries normalized paging parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Skip is the offset of the first row on the requested page.
func (r PageRequest) Skip() int {
	return (r.Page - 1) * r.Limit
}

// ParsePageRequest normalizes raw page/limit strings, falling back to
// {1, 10} when a value is absent, non-numeric, or not positive.
func ParsePageRequest(rawPage, rawLimit string) PageRequest {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page <= 0 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// PageResult is the paginated response envelope.
type PageResult[T any] struct {
	TotalCount     int  `json:"total_count"`
	PrevPageNumber *int `json:"prev_page_number"`
	NextPageNumber *int `json:"next_page_number"`
	Data           []T  `json:"data"`
}

// Collection is the storage surface the paginator queries. Find must return
// rows ordered by creation time descending.
type Collection[T any] interface {
	Count(ctx context.Context, f Filter) (int, error)
	Find(ctx context.Context, f Filter, limit, offset int) ([]T, error)
}

// Paginate counts matching rows, fetches the requested window, and derives
// the navigation fields. prev/next come from the stateless formulas alone:
// a page past the end still reports prev when page > 1.
func Paginate[T any](ctx context.Context, req PageRequest, f Filter, col Collection[T]) (PageResult[T], error) {
	total, err := col.Count(ctx, f)
	if err != nil {
		return PageResult[T]{}, err
	}

	data, err := col.Find(ctx, f, req.Limit, req.Skip())
	if err != nil {
		return PageResult[T]{}, err
	}
	if data == nil {
		data = []T{}
	}

	result := PageResult[T]{TotalCount: total, Data: data}
	if req.Page > 1 {
		prev := req.Page - 1
		result.PrevPageNumber = &prev
	}
	if req.Page*req.Limit < total {
		next := req.Page + 1
		result.NextPageNumber = &next
	}
	return result, nil
}
