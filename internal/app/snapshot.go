package app

import (
	"storefront/internal/notify"
	"storefront/internal/query"
	"storefront/internal/view"
)

// Snapshot is a read-only copy of everything a renderer needs. Nothing in
// it aliases controller state.
type Snapshot struct {
	View          View                  `json:"view"`
	Loading       bool                  `json:"loading"`
	CartOpen      bool                  `json:"cartOpen"`
	Query         query.Query           `json:"query"`
	Page          int                   `json:"page"`
	Categories    []view.CategoryOption `json:"categories"`
	Featured      []view.ProductCard    `json:"featured"`
	Products      []view.ProductCard    `json:"products"`
	ResultsCount  string                `json:"resultsCount"`
	Pagination    view.Pagination       `json:"pagination"`
	Detail        *view.ProductDetail   `json:"detail,omitempty"`
	Cart          view.Cart             `json:"cart"`
	Notifications []notify.Notification `json:"notifications"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	st := c.state
	c.mu.Unlock()

	page := query.Paginate(st.filtered, st.page, query.PageSize)
	snap := Snapshot{
		View:          st.view,
		Loading:       st.pending > 0,
		CartOpen:      st.cartOpen,
		Query:         st.query,
		Page:          st.page,
		Categories:    view.CategoryOptions(c.catalog.Categories()),
		Featured:      view.Cards(c.catalog.Featured(FeaturedCount)),
		Products:      view.Cards(page.Items),
		ResultsCount:  view.ResultsCount(len(st.filtered)),
		Pagination:    view.NewPagination(st.page, page.TotalPages),
		Cart:          view.CartView(c.cart.Items(), c.cart.Totals()),
		Notifications: c.notifier.Active(),
	}
	if st.detail != nil {
		d := view.Detail(*st.detail)
		snap.Detail = &d
	}
	return snap
}
