package domain

// Product is a catalog entry as served by the remote catalog service.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand,omitempty"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	Reviews            []Review `json:"reviews,omitempty"`
}

type Review struct {
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date,omitempty"`
	ReviewerName string `json:"reviewerName,omitempty"`
}
