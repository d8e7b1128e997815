// Package pager slices a ranked sequence into bounded 1-based pages and
// issues continuation cursors bound to the query fingerprint.
package pager

import (
	"fmt"

	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

// Pager holds the page size bounds.
type Pager struct {
	DefaultSize int
	MaxSize     int
}

// New returns a Pager; non-positive bounds fall back to 20 / 50.
func New(defaultSize, maxSize int) Pager {
	if maxSize <= 0 {
		maxSize = 50
	}
	if defaultSize <= 0 {
		defaultSize = 20
	}
	if defaultSize > maxSize {
		defaultSize = maxSize
	}
	return Pager{DefaultSize: defaultSize, MaxSize: maxSize}
}

// ClampSize maps a requested size into [1, MaxSize]; non-positive means default.
func (p Pager) ClampSize(requested int) int {
	switch {
	case requested <= 0:
		return p.DefaultSize
	case requested > p.MaxSize:
		return p.MaxSize
	}
	return requested
}

// Resolve turns (page, size, cursor) into a concrete page position. A cursor
// overrides page and size; it must carry fingerprint fp or the call fails
// with domain.ErrStaleCursor.
func (p Pager) Resolve(page, size int, cursor string, fp []byte) (int, int, error) {
	if cursor != "" {
		c, err := pagination.DecodePage(cursor)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", domain.ErrStaleCursor, err)
		}
		if !c.Matches(fp) {
			return 0, 0, fmt.Errorf("%w: cursor was issued for a different query", domain.ErrStaleCursor)
		}
		return c.Page, p.ClampSize(c.PageSize), nil
	}
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page %d, pages are 1-based", domain.ErrInvalidRequest, page)
	}
	return page, p.ClampSize(size), nil
}

// Page cuts page number `page` of `size` items out of ranked. Pages past the
// end are empty with HasMore=false.
func (p Pager) Page(ranked []domain.Candidate, page, size int, fp []byte) domain.Page {
	size = p.ClampSize(size)
	total := len(ranked)
	totalPages := (total + size - 1) / size

	out := domain.Page{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: totalPages,
	}

	// compare page numbers before multiplying so huge pages cannot overflow
	if page < 1 || page > totalPages {
		out.Items = []domain.Candidate{}
		return out
	}
	start := (page - 1) * size
	end := min(start+size, total)
	out.Items = ranked[start:end:end]
	out.HasMore = end < total
	if out.HasMore {
		out.NextCursor = pagination.EncodePage(pagination.PageCursor{
			Page:        page + 1,
			PageSize:    size,
			Fingerprint: fp,
		})
	}
	return out
}
