package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/query"
)

// ErrInvalidCommand marks commands that cannot be decoded or carry bad
// arguments.
var ErrInvalidCommand = errors.New("invalid command")

// Command is a user action consumed by Controller.Dispatch.
type Command interface {
	Name() string
}

type (
	NavigateHome     struct{}
	NavigateProducts struct{}
	GoBack           struct{}
	ToggleCart       struct{}

	Search struct {
		Text string
	}
	SelectCategory struct {
		Slug string
	}
	SelectSort struct {
		Sort query.SortKey
	}
	ChangePage struct {
		Page int
	}
	ViewProduct struct {
		ID int
	}
	AddToCart struct {
		ID int
	}
	UpdateQuantity struct {
		ID    int
		Delta int
	}
	RemoveFromCart struct {
		ID int
	}
	// Checkout without Confirmed only asks for confirmation.
	Checkout struct {
		Confirmed bool
	}
	AddToWishlist struct {
		ID int
	}
)

func (NavigateHome) Name() string     { return "navigateHome" }
func (NavigateProducts) Name() string { return "navigateProducts" }
func (GoBack) Name() string           { return "goBack" }
func (ToggleCart) Name() string       { return "toggleCart" }
func (Search) Name() string           { return "search" }
func (SelectCategory) Name() string   { return "selectCategory" }
func (SelectSort) Name() string       { return "selectSort" }
func (ChangePage) Name() string       { return "changePage" }
func (ViewProduct) Name() string      { return "viewProduct" }
func (AddToCart) Name() string        { return "addToCart" }
func (UpdateQuantity) Name() string   { return "updateQuantity" }
func (RemoveFromCart) Name() string   { return "removeFromCart" }
func (Checkout) Name() string         { return "checkout" }
func (AddToWishlist) Name() string    { return "addToWishlist" }

// envelope is the JSON form of a command: {"type": "...", ...arguments}.
type envelope struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Slug      string `json:"slug"`
	Sort      string `json:"sort"`
	Page      int    `json:"page"`
	ID        int    `json:"id"`
	Delta     int    `json:"delta"`
	Confirmed bool   `json:"confirmed"`
}

// DecodeCommand parses the JSON form of a command.
func DecodeCommand(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	switch strings.TrimSpace(env.Type) {
	case "navigateHome":
		return NavigateHome{}, nil
	case "navigateProducts":
		return NavigateProducts{}, nil
	case "goBack":
		return GoBack{}, nil
	case "toggleCart":
		return ToggleCart{}, nil
	case "search":
		return Search{Text: env.Text}, nil
	case "selectCategory":
		return SelectCategory{Slug: env.Slug}, nil
	case "selectSort":
		key, err := query.ParseSort(env.Sort)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		return SelectSort{Sort: key}, nil
	case "changePage":
		return ChangePage{Page: env.Page}, nil
	case "viewProduct":
		return ViewProduct{ID: env.ID}, nil
	case "addToCart":
		return AddToCart{ID: env.ID}, nil
	case "updateQuantity":
		return UpdateQuantity{ID: env.ID, Delta: env.Delta}, nil
	case "removeFromCart":
		return RemoveFromCart{ID: env.ID}, nil
	case "checkout":
		return Checkout{Confirmed: env.Confirmed}, nil
	case "addToWishlist":
		return AddToWishlist{ID: env.ID}, nil
	case "":
		return nil, fmt.Errorf("%w: type required", ErrInvalidCommand)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, env.Type)
	}
}
