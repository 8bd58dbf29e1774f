// Package dashboard implements the client-side result browsing helpers:
// viewport-aware pagination over an already-fetched listing set and the
// debounced live-search suggestion box. Server-side filtering is a URL
// build, not a client re-render.
package dashboard

// Viewport breakpoints and the page sizes they map to.
const (
	WideBreakpoint = 1024
	NarrowPerPage  = 6
	WidePerPage    = 12
)

// stripWidth is the number of page links shown at once.
const stripWidth = 5

// PerPageFor maps a viewport width to a page size.
func PerPageFor(width int) int {
	if width < WideBreakpoint {
		return NarrowPerPage
	}
	return WidePerPage
}

// Strip is the render model for one pagination pass: the visible item
// range plus the page-link strip.
type Strip struct {
	// Page is the clamped current page, 1-based.
	Page int
	// TotalPages is at least 1, even with no items.
	TotalPages int
	// First and Last bound the visible item indexes: [First, Last).
	First, Last int
	// Pages is the sliding window of page numbers to link.
	Pages []int
	// LeadingGap and TrailingGap mark the ellipses on either side.
	LeadingGap, TrailingGap bool
	// PrevEnabled and NextEnabled gate the arrow controls.
	PrevEnabled, NextEnabled bool
}

// Pager slices an already-rendered result set into pages. It owns the
// page/perPage/total state explicitly; every mutation returns the fresh
// render model.
type Pager struct {
	page    int
	perPage int
	total   int
}

// NewPager builds a pager on page 1 for the given viewport width and item
// count.
func NewPager(width, total int) *Pager {
	if total < 0 {
		total = 0
	}
	return &Pager{page: 1, perPage: PerPageFor(width), total: total}
}

// PerPage returns the current page size.
func (p *Pager) PerPage() int { return p.perPage }

// Page returns the current page after clamping.
func (p *Pager) Page() int {
	p.clamp()
	return p.page
}

// TotalPages returns the page count, at least 1.
func (p *Pager) TotalPages() int {
	pages := (p.total + p.perPage - 1) / p.perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (p *Pager) clamp() {
	if p.page < 1 {
		p.page = 1
	}
	if max := p.TotalPages(); p.page > max {
		p.page = max
	}
}

// SetTotal updates the item count and re-clamps the current page.
func (p *Pager) SetTotal(total int) Strip {
	if total < 0 {
		total = 0
	}
	p.total = total
	return p.Render()
}

// SetPage jumps to a page, clamped into range.
func (p *Pager) SetPage(page int) Strip {
	p.page = page
	return p.Render()
}

// Next advances one page, capped at the last.
func (p *Pager) Next() Strip {
	p.page++
	return p.Render()
}

// Prev steps one page back, floored at the first.
func (p *Pager) Prev() Strip {
	p.page--
	return p.Render()
}

// Resize recomputes the page size for a new viewport width and re-maps the
// current page so the previously first-visible item stays visible.
func (p *Pager) Resize(width int) Strip {
	p.clamp()
	firstVisible := (p.page - 1) * p.perPage
	p.perPage = PerPageFor(width)
	p.page = firstVisible/p.perPage + 1
	return p.Render()
}

// Render clamps the page and rebuilds the full render model.
func (p *Pager) Render() Strip {
	p.clamp()
	totalPages := p.TotalPages()

	first := (p.page - 1) * p.perPage
	last := first + p.perPage
	if last > p.total {
		last = p.total
	}
	if first > p.total {
		first = p.total
	}

	// Sliding window of page links centred on the current page.
	start := p.page - stripWidth/2
	if start+stripWidth-1 > totalPages {
		start = totalPages - stripWidth + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + stripWidth - 1
	if end > totalPages {
		end = totalPages
	}
	pages := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}

	return Strip{
		Page:        p.page,
		TotalPages:  totalPages,
		First:       first,
		Last:        last,
		Pages:       pages,
		LeadingGap:  start > 1,
		TrailingGap: end < totalPages,
		PrevEnabled: p.page > 1,
		NextEnabled: p.page < totalPages,
	}
}
