package models

// LineItem is one product entry in the cart, keyed by product id.
// Price is the unit price snapshotted at the time the item was added.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image,omitempty"`
}

// OrderItem is a LineItem stripped for the order payload; the backend
// does not want the image URL.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}
