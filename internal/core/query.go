package core

import (
	"strings"
)

// Paging defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ClampPage returns page, or DefaultPage when page < 1.
func ClampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// ClampPageSize returns DefaultPageSize for 0 and otherwise clamps to [1, MaxPageSize].
func ClampPageSize(size int) int {
	if size == 0 {
		return DefaultPageSize
	}
	return min(max(size, 1), MaxPageSize)
}

// Filter returns the records whose name contains query (case-insensitive,
// trimmed) and whose legendary flag equals legendary when it is set.
// The result is a new slice in dataset order.
func Filter(records []Pokemon, query string, legendary *bool) []Pokemon {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Pokemon, 0, len(records))
	for i := range records {
		p := &records[i]
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if legendary != nil && p.Legendary != *legendary {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// List filters, sorts and pages ds.
// A page past the end yields an empty Data slice.
func List(ds *Dataset, params ListParams) ListResult {
	page := ClampPage(params.Page)
	size := ClampPageSize(params.PageSize)

	rows := Filter(ds.Records(), params.Query, params.Legendary)
	SortRecords(rows, ParseSort(params.Sort))

	result := ListResult{
		Total:    len(rows),
		Page:     page,
		PageSize: size,
		Data:     []Pokemon{},
	}

	// Guard the offset multiplication against overflow on absurd page numbers.
	if page-1 >= (len(rows)+size-1)/size {
		return result
	}
	start := (page - 1) * size
	end := min(start+size, len(rows))
	result.Data = rows[start:end]
	return result
}

// GetByID returns the record with id or a *NotFoundError.
func GetByID(ds *Dataset, id int) (Pokemon, error) {
	p, ok := ds.Lookup(id)
	if !ok {
		return Pokemon{}, &NotFoundError{ID: id}
	}
	return p, nil
}

// GetDetail returns the record with id and its k nearest neighbors.
func GetDetail(ds *Dataset, id, k int) (Detail, error) {
	p, err := GetByID(ds, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Pokemon: p,
		Similar: nearest(ds, p, clampSimilarCount(k)),
	}, nil
}
