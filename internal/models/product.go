package models

// Product is a catalog entry as served by the product API.
type Product struct {
	UUID         string  `json:"uuid"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	AvgRating    float64 `json:"avgRating,omitempty"`
	DateAdded    string  `json:"dateAdded,omitempty"`
	ProductImage string  `json:"productImage"`
}

type Category struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PaginatedProducts is the product listing envelope.
type PaginatedProducts struct {
	Products    []Product `json:"productItems"`
	TotalItems  int       `json:"totalProductItems"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	Success     bool      `json:"success"`
}
