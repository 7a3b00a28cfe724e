package pagination

import (
	"fmt"
)

// Pager tracks the current page over a collection whose size changes.
// The zero value is not usable; create one with NewPager.
type Pager struct {
	size    int
	total   int
	current int
}

// NewPager returns a pager on page 1 with the given page size.
func NewPager(size int) (*Pager, error) {
	if size <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", size)
	}
	return &Pager{size: size, current: 1}, nil
}

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Total returns the collection length last given to SetTotal.
func (p *Pager) Total() int { return p.total }

// Current returns the 1-based current page.
func (p *Pager) Current() int { return p.current }

// SetTotal records a new collection length and clamps the current page to
// max(1, TotalPages()).
func (p *Pager) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
	p.current = min(p.current, p.DisplayPages())
}

// TotalPages returns ceil(total/size), 0 when the collection is empty.
func (p *Pager) TotalPages() int {
	return TotalPages(p.total, p.size)
}

// DisplayPages returns TotalPages but never less than 1.
func (p *Pager) DisplayPages() int {
	return max(1, p.TotalPages())
}

// Next advances one page; on the last page it does nothing.
func (p *Pager) Next() bool {
	if p.current >= p.DisplayPages() {
		return false
	}
	p.current++
	return true
}

// Previous goes back one page; on page 1 it does nothing.
func (p *Pager) Previous() bool {
	if p.current <= 1 {
		return false
	}
	p.current--
	return true
}

// GoTo jumps to page, clamped to [1, DisplayPages()].
func (p *Pager) GoTo(page int) {
	p.current = min(max(page, 1), p.DisplayPages())
}
