package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
)

// DefaultKey is the storage key the serialized cart lives under.
const DefaultKey = "ecommerce_cart"

// Store is a string key-value store. Get reports found=false for an absent
// key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repository persists the cart as one JSON document under a fixed key.
type Repository struct {
	store  Store
	key    string
	logger zerolog.Logger
}

func New(store Store, key string, logger zerolog.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{store: store, key: key, logger: logger}
}

// Load restores the persisted cart. An absent, unreadable or malformed value
// yields an empty cart.
func (r *Repository) Load(ctx context.Context) []domain.CartItem {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.logger.Error().Err(err).Str("key", r.key).Msg("cart repo: read failed, starting with empty cart")
		return []domain.CartItem{}
	}
	if !found || raw == "" {
		return []domain.CartItem{}
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("cart repo: malformed cart, starting with empty cart")
		return []domain.CartItem{}
	}

	out := normalize(items)
	if len(out) != len(items) {
		r.logger.Warn().Int("stored", len(items)).Int("kept", len(out)).Msg("cart repo: dropped invalid cart entries")
	}
	r.logger.Debug().Int("items", len(out)).Msg("cart repo: loaded")
	return out
}

// Save writes the whole cart in one store call.
func (r *Repository) Save(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart repo: encode: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("cart repo: write %s: %w", r.key, err)
	}
	return nil
}

// Ping checks the backing store when it is remote.
func (r *Repository) Ping(ctx context.Context) error {
	if p, ok := r.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// normalize drops entries with a non-positive quantity, merges duplicate
// product ids into the first occurrence and caps quantities at
// domain.MaxQuantity.
func normalize(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	index := make(map[int]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if pos, ok := index[it.ID]; ok {
			out[pos].Quantity = domain.AddQuantity(out[pos].Quantity, it.Quantity)
			continue
		}
		it.Quantity = min(it.Quantity, domain.MaxQuantity)
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
