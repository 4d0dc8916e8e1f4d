package httpserver

import (
	"context"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storefront/internal/app"
	"storefront/internal/domain"
)

type controller interface {
	Dispatch(ctx context.Context, cmd app.Command) (app.Result, error)
	Snapshot() app.Snapshot
}

type catalogReader interface {
	Products() []domain.Product
	Categories() []domain.Category
	ProductDetail(ctx context.Context, id int) (domain.Product, error)
}

type cartReader interface {
	Items() []domain.CartItem
	Totals() domain.Totals
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds everything the handlers read from. Every mutation goes through
// Controller.
type Deps struct {
	Controller controller
	Catalog    catalogReader
	Cart       cartReader
	// Ready is pinged by /readyz; nil means always ready.
	Ready pinger
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware(corsOrigins))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/api")
	api.GET("/state", h.state)
	api.POST("/commands", h.command)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/categories", h.listCategories)
	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.PATCH("/cart/items/:id", h.updateCartItem)
	api.DELETE("/cart/items/:id", h.removeCartItem)
	api.POST("/cart/checkout", h.checkout)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}
