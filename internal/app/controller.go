// Package app owns the storefront session state and turns user commands into
// catalog, query and cart operations.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/query"
	"storefront/internal/view"
)

type View string

const (
	ViewHome          View = "home"
	ViewProducts      View = "products"
	ViewProductDetail View = "productDetail"
)

// FeaturedCount is how many products the home view shows.
const FeaturedCount = 8

type catalogService interface {
	LoadCategories(ctx context.Context) error
	LoadProducts(ctx context.Context) error
	ProductDetail(ctx context.Context, id int) (domain.Product, error)
	Find(id int) (domain.Product, bool)
	Products() []domain.Product
	Categories() []domain.Category
	Featured(n int) []domain.Product
}

type cartService interface {
	Add(ctx context.Context, productID int) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, productID, delta int) error
	Remove(ctx context.Context, productID int) error
	Checkout(ctx context.Context) (domain.Receipt, error)
	Items() []domain.CartItem
	Totals() domain.Totals
}

// Result carries what a command produced beyond the state change.
type Result struct {
	Prompt  string          `json:"prompt,omitempty"`
	Receipt *domain.Receipt `json:"receipt,omitempty"`
}

type state struct {
	view     View
	backTo   View
	query    query.Query
	page     int
	pending  int
	cartOpen bool
	detail   *domain.Product
	filtered []domain.Product
}

// Controller serializes every state mutation behind mu. Remote fetches run
// without holding it and apply their result afterwards.
type Controller struct {
	catalog  catalogService
	cart     cartService
	notifier *notify.Notifier
	logger   zerolog.Logger

	mu    sync.Mutex
	state state
}

func New(catalog catalogService, cart cartService, notifier *notify.Notifier, logger zerolog.Logger) *Controller {
	if notifier == nil {
		notifier = notify.New()
	}
	return &Controller{
		catalog:  catalog,
		cart:     cart,
		notifier: notifier,
		logger:   logger,
		state: state{
			view:     ViewHome,
			backTo:   ViewHome,
			page:     1,
			filtered: []domain.Product{},
		},
	}
}

// Init loads categories, then products. Failures are reported to the user
// and leave the session usable with whatever is loaded.
func (c *Controller) Init(ctx context.Context) {
	c.begin()
	defer c.end()

	if err := c.catalog.LoadCategories(ctx); err != nil {
		c.logger.Error().Err(err).Msg("load categories failed")
		c.notifier.Error("Failed to load categories")
	}
	if err := c.catalog.LoadProducts(ctx); err != nil {
		c.logger.Error().Err(err).Msg("load products failed")
		c.notifier.Error("Failed to load products")
	}

	c.mu.Lock()
	c.refilter()
	c.mu.Unlock()
}

// Dispatch applies one command. Commands that reference a product absent
// from the catalog or the cart are silent no-ops.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	c.logger.Debug().Str("command", cmd.Name()).Msg("dispatch")

	switch cmd := cmd.(type) {
	case ViewProduct:
		return Result{}, c.viewProduct(ctx, cmd.ID)
	case AddToCart:
		return Result{}, c.addToCart(ctx, cmd.ID)
	case UpdateQuantity:
		return Result{}, c.cartMutation(c.cart.UpdateQuantity(ctx, cmd.ID, cmd.Delta))
	case RemoveFromCart:
		return Result{}, c.cartMutation(c.cart.Remove(ctx, cmd.ID))
	case Checkout:
		return c.checkout(ctx, cmd.Confirmed)
	case AddToWishlist:
		c.notifier.Success("Feature coming soon")
		return Result{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd := cmd.(type) {
	case NavigateHome:
		c.state.view = ViewHome
	case NavigateProducts:
		c.showProducts()
	case GoBack:
		if c.state.backTo == ViewProducts {
			c.showProducts()
		} else {
			c.state.view = ViewHome
		}
	case ToggleCart:
		c.state.cartOpen = !c.state.cartOpen
	case Search:
		c.state.query.Search = strings.TrimSpace(cmd.Text)
		c.state.view = ViewProducts
		c.requery()
	case SelectCategory:
		c.state.query.Category = cmd.Slug
		c.requery()
	case SelectSort:
		key, err := query.ParseSort(string(cmd.Sort))
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		c.state.query.Sort = key
		c.requery()
	case ChangePage:
		if query.ValidPage(cmd.Page, query.PageCount(len(c.state.filtered), query.PageSize)) {
			c.state.page = cmd.Page
		}
	default:
		return Result{}, fmt.Errorf("%w: unsupported command %T", ErrInvalidCommand, cmd)
	}
	return Result{}, nil
}

func (c *Controller) viewProduct(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: product id must be positive", ErrInvalidCommand)
	}

	c.begin()
	product, err := c.catalog.ProductDetail(ctx, id)
	c.end()
	if err != nil {
		c.logger.Error().Err(err).Int("product_id", id).Msg("load product detail failed")
		c.notifier.Error("Failed to load product")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.view != ViewProductDetail {
		c.state.backTo = c.state.view
	}
	c.state.view = ViewProductDetail
	c.state.detail = &product
	return nil
}

func (c *Controller) addToCart(ctx context.Context, id int) error {
	item, err := c.cart.Add(ctx, id)
	if err != nil {
		return c.cartMutation(err)
	}
	c.notifier.Success(fmt.Sprintf("%s added to cart", item.Title))
	return nil
}

// cartMutation drops not-found errors and reports persistence failures.
func (c *Controller) cartMutation(err error) error {
	switch {
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		c.logger.Error().Err(err).Msg("cart update failed")
		c.notifier.Error("Could not save your cart")
		return err
	}
}

func (c *Controller) checkout(ctx context.Context, confirmed bool) (Result, error) {
	totals := c.cart.Totals()
	if totals.ItemCount == 0 {
		c.notifier.Error("Your cart is empty")
		return Result{}, domain.ErrEmptyCart
	}
	if !confirmed {
		return Result{Prompt: fmt.Sprintf("Confirm order of %s?", view.Cents(totals.TotalCents))}, nil
	}

	receipt, err := c.cart.Checkout(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			c.notifier.Error("Your cart is empty")
			return Result{}, err
		}
		return Result{}, c.cartMutation(err)
	}

	c.mu.Lock()
	c.state.cartOpen = false
	c.mu.Unlock()

	c.logger.Info().Int("items", receipt.ItemCount).Int64("total_cents", receipt.TotalCents).Msg("checkout completed")
	c.notifier.Success("Order confirmed! Thank you for your purchase.")
	return Result{Receipt: &receipt}, nil
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.state.pending++
	c.mu.Unlock()
}

func (c *Controller) end() {
	c.mu.Lock()
	c.state.pending--
	c.mu.Unlock()
}

// showProducts switches to the listing with a freshly filtered view. The
// current page is kept when it still exists. Callers hold c.mu.
func (c *Controller) showProducts() {
	c.state.view = ViewProducts
	c.refilter()
	if total := query.PageCount(len(c.state.filtered), query.PageSize); !query.ValidPage(c.state.page, total) {
		c.state.page = 1
	}
}

// requery refilters and returns to the first page. Callers hold c.mu.
func (c *Controller) requery() {
	c.refilter()
	c.state.page = 1
}

func (c *Controller) refilter() {
	c.state.filtered = query.Apply(c.catalog.Products(), c.state.query)
}
