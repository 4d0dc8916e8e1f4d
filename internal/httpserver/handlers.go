package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/app"
	"storefront/internal/domain"
	"storefront/internal/query"
	"storefront/internal/view"
)

var errBadRequest = errors.New("bad request")

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}

type commandResponse struct {
	Result app.Result   `json:"result"`
	State  app.Snapshot `json:"state"`
}

type productsResponse struct {
	Items        []view.ProductCard `json:"items"`
	Page         int                `json:"page"`
	TotalPages   int                `json:"totalPages"`
	Total        int                `json:"total"`
	ResultsCount string             `json:"resultsCount"`
	Pagination   view.Pagination    `json:"pagination"`
}

type addItemRequest struct {
	ID int `json:"id"`
}

type updateItemRequest struct {
	Delta int `json:"delta"`
}

type checkoutResponse struct {
	Receipt domain.Receipt `json:"receipt"`
	Total   string         `json:"total"`
}

func (h *handlers) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Controller.Snapshot())
}

func (h *handlers) command(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: read body: %v", errBadRequest, err))
		return
	}
	cmd, err := app.DecodeCommand(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.deps.Controller.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commandResponse{Result: res, State: h.deps.Controller.Snapshot()})
}

func (h *handlers) listProducts(c *gin.Context) {
	sort, err := query.ParseSort(c.Query("sort"))
	if err != nil {
		h.fail(c, err)
		return
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			h.fail(c, fmt.Errorf("%w: page must be a number", errBadRequest))
			return
		}
	}

	filtered := query.Apply(h.deps.Catalog.Products(), query.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     sort,
	})
	totalPages := query.PageCount(len(filtered), query.PageSize)
	if page < 1 || (totalPages > 0 && !query.ValidPage(page, totalPages)) {
		h.fail(c, fmt.Errorf("%w: page %d out of range", errBadRequest, page))
		return
	}

	p := query.Paginate(filtered, page, query.PageSize)
	c.JSON(http.StatusOK, productsResponse{
		Items:        view.Cards(p.Items),
		Page:         p.Number,
		TotalPages:   p.TotalPages,
		Total:        p.Total,
		ResultsCount: view.ResultsCount(p.Total),
		Pagination:   view.NewPagination(p.Number, p.TotalPages),
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	p, err := h.deps.Catalog.ProductDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Detail(p))
}

func (h *handlers) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, view.CategoryOptions(h.deps.Catalog.Categories()))
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
		h.fail(c, fmt.Errorf("%w: positive product id required", errBadRequest))
		return
	}
	h.cartCommand(c, app.AddToCart{ID: req.ID})
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	h.cartCommand(c, app.UpdateQuantity{ID: id, Delta: req.Delta})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	h.cartCommand(c, app.RemoveFromCart{ID: id})
}

func (h *handlers) checkout(c *gin.Context) {
	res, err := h.deps.Controller.Dispatch(c.Request.Context(), app.Checkout{Confirmed: true})
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Receipt == nil {
		h.fail(c, errors.New("checkout produced no receipt"))
		return
	}
	c.JSON(http.StatusOK, checkoutResponse{Receipt: *res.Receipt, Total: view.Cents(res.Receipt.TotalCents)})
}

// cartCommand dispatches cmd and answers with the cart. Ids missing from
// the catalog or the cart are no-ops, as on /api/commands.
func (h *handlers) cartCommand(c *gin.Context, cmd app.Command) {
	if _, err := h.deps.Controller.Dispatch(c.Request.Context(), cmd); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) cartView() view.Cart {
	return view.CartView(h.deps.Cart.Items(), h.deps.Cart.Totals())
}

func (h *handlers) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.fail(c, fmt.Errorf("%w: invalid id %q", errBadRequest, c.Param("id")))
		return 0, false
	}
	return id, true
}

// fail maps err onto a status code and writes {"error": msg}.
func (h *handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, app.ErrInvalidCommand),
		errors.Is(err, query.ErrUnknownSort):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsFetchError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
