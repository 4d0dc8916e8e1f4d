package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

const (
	resourceCategories = "categories"
	resourceProducts   = "products"
	resourceProduct    = "product"

	maxBodyBytes = 32 << 20
)

// Client talks to the remote catalog service. Every failure it returns is a
// *domain.FetchError.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
	tracer  trace.TracerProvider
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client. Spans are then
// only recorded if hc's transport does so itself.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each retrieval. Zero leaves calls bounded only by the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracerProvider sets where client spans go. The default is the global
// provider installed by tracing.Setup.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		logger:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		var topts []otelhttp.Option
		if c.tracer != nil {
			topts = append(topts, otelhttp.WithTracerProvider(c.tracer))
		}
		c.http = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport, topts...)}
	}
	return c
}

// Categories retrieves the category listing.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, resourceCategories, "/products/categories", &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &domain.FetchError{Resource: resourceCategories, Err: errors.New("missing category list")}
	}
	return out, nil
}

type productsPage struct {
	Products *[]domain.Product `json:"products"`
	Total    int               `json:"total"`
}

// Products retrieves up to limit products in catalog order.
func (c *Client) Products(ctx context.Context, limit int) ([]domain.Product, error) {
	path := "/products"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var page productsPage
	if err := c.get(ctx, resourceProducts, path, &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		return nil, &domain.FetchError{Resource: resourceProducts, Err: errors.New("missing products field")}
	}
	return *page.Products, nil
}

// Product retrieves a single product. A 404 from the service is reported as
// a FetchError wrapping domain.ErrNotFound.
func (c *Client) Product(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, resourceProduct, "/products/"+strconv.Itoa(id), &p); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, &domain.FetchError{Resource: resourceProduct, Err: errors.New("empty product payload")}
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, resource, path string, dst any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveFetch(resource, started, err)
		if err != nil {
			c.logger.Warn().Err(err).Str("resource", resource).Str("path", path).Msg("catalog fetch failed")
			return
		}
		c.logger.Debug().Str("resource", resource).Dur("duration", time.Since(started)).Msg("catalog fetch done")
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &domain.FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &domain.FetchError{Resource: resource, Err: domain.ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.FetchError{Resource: resource, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &domain.FetchError{Resource: resource, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
