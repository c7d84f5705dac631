package domain

import (
	"fmt"
	"math"
	"strings"
)

// SortField is a restaurant column a list can be ordered by.
type SortField string

// Sortable restaurant fields
const (
	SortByID    SortField = "id"
	SortByName  SortField = "name"
	SortByVotes SortField = "votes"
)

// SortDirection orders a list ascending or descending.
type SortDirection string

// Sort directions
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Paging defaults applied when a caller omits a parameter.
const (
	DefaultPage          = 0
	DefaultPageSize      = math.MaxInt32
	DefaultSortField     = SortByVotes
	DefaultSortDirection = SortDesc
)

// PageRequest is a fully resolved page index, page size and ordering.
// Ties on the sort field are broken by id in the same direction.
type PageRequest struct {
	Page      int
	Size      int
	SortField SortField
	Direction SortDirection
}

// DefaultPageRequest returns the request used when no paging is specified:
// everything, most voted first.
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page:      DefaultPage,
		Size:      DefaultPageSize,
		SortField: DefaultSortField,
		Direction: DefaultSortDirection,
	}
}

// ResolvePageRequest applies defaults to every omitted parameter and rejects
// unknown sort tokens and out-of-range page values with ErrInvalidArgument.
func ResolvePageRequest(page, size *int, sortField, direction string) (PageRequest, error) {
	req := DefaultPageRequest()

	if page != nil {
		if *page < 0 {
			return PageRequest{}, NewInvalidArgumentError("page must not be negative")
		}
		req.Page = *page
	}

	if size != nil {
		if *size < 1 {
			return PageRequest{}, NewInvalidArgumentError("page size must be at least 1")
		}
		req.Size = *size
	}

	if sortField != "" {
		f, err := ParseSortField(sortField)
		if err != nil {
			return PageRequest{}, err
		}
		req.SortField = f
	}

	if direction != "" {
		d, err := ParseSortDirection(direction)
		if err != nil {
			return PageRequest{}, err
		}
		req.Direction = d
	}

	return req, nil
}

// ParseSortField resolves a case-insensitive sort token.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByID, SortByName, SortByVotes:
		return f, nil
	default:
		return "", NewInvalidArgumentError(fmt.Sprintf("unknown sort field %q", s))
	}
}

// ParseSortDirection resolves a case-insensitive direction token.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case SortAsc, SortDesc:
		return d, nil
	default:
		return "", NewInvalidArgumentError(fmt.Sprintf("unknown sort direction %q", s))
	}
}

// Offset is the number of rows skipped before the page starts. It saturates at
// math.MaxInt64, so a page index too large to address yields an empty page.
func (p PageRequest) Offset() int64 {
	page, size := int64(p.Page), int64(p.Size)
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt64/size {
		return math.MaxInt64
	}
	return page * size
}

// CacheKey identifies the page in the list cache.
func (p PageRequest) CacheKey() string {
	return fmt.Sprintf("restaurants:%s:%s:%d:%d", p.SortField, p.Direction, p.Page, p.Size)
}

// Less orders a before b according to the request, breaking ties by id.
func (p PageRequest) Less(a, b *Restaurant) bool {
	var cmp int
	switch p.SortField {
	case SortByName:
		cmp = strings.Compare(a.Name, b.Name)
	case SortByVotes:
		cmp = compareInt64(int64(a.Votes), int64(b.Votes))
	}
	if cmp == 0 {
		cmp = compareInt64(a.ID, b.ID)
	}
	if p.Direction == SortDesc {
		return cmp > 0
	}
	return cmp < 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
