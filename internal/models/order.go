package models

// CheckoutRequest is the body posted to the order backend. State is
// always 0 (newly placed) on creation.
type CheckoutRequest struct {
	OrderedBy  string      `json:"ordered_by"`
	State      int         `json:"state"`
	RoomNumber string      `json:"room_number"`
	Hall       string      `json:"hall"`
	Items      []OrderItem `json:"items"`
}

// CheckoutResponse mirrors the order backend's creation envelope.
type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message,omitempty"`
}

// CheckoutResult is the structured outcome handed back to callers.
// Navigation to the confirmation view is the caller's decision; the
// cart service only reports what happened.
type CheckoutResult struct {
	Success bool    `json:"success"`
	OrderID string  `json:"orderId,omitempty"`
	Total   float64 `json:"total,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Order is the backend's stored order representation.
type Order struct {
	UUID        string      `json:"uuid"`
	OrderedBy   string      `json:"ordered_by"`
	OrderedDate string      `json:"ordered_date"`
	State       int         `json:"state"`
	TotalPrice  string      `json:"total_price"`
	Items       []OrderItem `json:"items"`
	RoomNumber  string      `json:"room_number,omitempty"`
	Hall        string      `json:"hall,omitempty"`
}
