package view

import (
	"fmt"

	"storefront/internal/domain"
)

type ProductCard struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Thumbnail     string `json:"thumbnail"`
	Price         string `json:"price"`
	DiscountBadge string `json:"discountBadge,omitempty"`
	Stars         string `json:"stars"`
	RatingText    string `json:"ratingText"`
}

func Card(p domain.Product) ProductCard {
	return ProductCard{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Thumbnail:     p.Thumbnail,
		Price:         Price(p.Price),
		DiscountBadge: DiscountBadge(p.DiscountPercentage),
		Stars:         Stars(p.Rating),
		RatingText:    RatingText(p.Rating),
	}
}

func Cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, Card(p))
	}
	return out
}

type StockLevel string

const (
	InStock    StockLevel = "in-stock"
	LowStock   StockLevel = "low-stock"
	OutOfStock StockLevel = "out-of-stock"

	lowStockThreshold = 10
	unknownBrand      = "Not specified"
)

func StockLevelOf(stock int) StockLevel {
	switch {
	case stock > lowStockThreshold:
		return InStock
	case stock > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

type ProductDetail struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Images        []string   `json:"images"`
	Price         string     `json:"price"`
	DiscountBadge string     `json:"discountBadge,omitempty"`
	Stars         string     `json:"stars"`
	RatingText    string     `json:"ratingText"`
	ReviewCount   int        `json:"reviewCount"`
	Category      string     `json:"category"`
	Brand         string     `json:"brand"`
	Stock         int        `json:"stock"`
	StockLevel    StockLevel `json:"stockLevel"`
	StockText     string     `json:"stockText"`
	CanAddToCart  bool       `json:"canAddToCart"`
}

func Detail(p domain.Product) ProductDetail {
	images := p.Images
	if len(images) == 0 && p.Thumbnail != "" {
		images = []string{p.Thumbnail}
	}
	if images == nil {
		images = []string{}
	}
	brand := p.Brand
	if brand == "" {
		brand = unknownBrand
	}
	stockText := "Out of stock"
	if p.Stock > 0 {
		stockText = fmt.Sprintf("%d available", p.Stock)
	}
	return ProductDetail{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Images:        images,
		Price:         Price(p.Price),
		DiscountBadge: DiscountBadge(p.DiscountPercentage),
		Stars:         Stars(p.Rating),
		RatingText:    RatingText(p.Rating),
		ReviewCount:   len(p.Reviews),
		Category:      CapitalizeFirst(p.Category),
		Brand:         brand,
		Stock:         p.Stock,
		StockLevel:    StockLevelOf(p.Stock),
		StockText:     stockText,
		CanAddToCart:  p.Stock > 0,
	}
}

type CategoryOption struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func CategoryOptions(categories []domain.Category) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryOption{Slug: c.Slug, Label: CapitalizeFirst(c.Name)})
	}
	return out
}
