package view

// pageWindow is how many page links are shown on each side of the current one.
const pageWindow = 2

type LinkKind string

const (
	LinkPrev     LinkKind = "prev"
	LinkNext     LinkKind = "next"
	LinkPage     LinkKind = "page"
	LinkEllipsis LinkKind = "ellipsis"
)

// PageLink is one control in the pagination bar. Page is the page the link
// navigates to; it is zero for ellipses.
type PageLink struct {
	Kind     LinkKind `json:"kind"`
	Page     int      `json:"page,omitempty"`
	Active   bool     `json:"active,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

type Pagination struct {
	Hidden     bool       `json:"hidden"`
	Current    int        `json:"current"`
	TotalPages int        `json:"totalPages"`
	Links      []PageLink `json:"links"`
}

// NewPagination lays out prev, the pages within two of current (plus the
// first and last page with ellipses where pages are skipped) and next.
// It is hidden when there is at most one page.
func NewPagination(current, totalPages int) Pagination {
	p := Pagination{Current: current, TotalPages: totalPages, Links: []PageLink{}}
	if totalPages <= 1 {
		p.Hidden = true
		return p
	}

	start := max(1, current-pageWindow)
	end := min(totalPages, current+pageWindow)

	p.Links = append(p.Links, PageLink{Kind: LinkPrev, Page: current - 1, Disabled: current <= 1})
	if start > 1 {
		p.Links = append(p.Links, PageLink{Kind: LinkPage, Page: 1})
		if start > 2 {
			p.Links = append(p.Links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
	}
	for i := start; i <= end; i++ {
		p.Links = append(p.Links, PageLink{Kind: LinkPage, Page: i, Active: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Links = append(p.Links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
		p.Links = append(p.Links, PageLink{Kind: LinkPage, Page: totalPages})
	}
	p.Links = append(p.Links, PageLink{Kind: LinkNext, Page: current + 1, Disabled: current >= totalPages})
	return p
}
