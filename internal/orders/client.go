package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cumall/cart-service/internal/models"
)

// Client talks to the order backend. A rejected order still decodes
// into a CheckoutResponse with Success false; only transport problems
// and undecodable bodies come back as errors.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Create submits one order, authenticated with the session's bearer
// token. The response body is decoded regardless of status code; the
// backend reports business rejections through the success flag.
func (c *Client) Create(ctx context.Context, token string, req models.CheckoutRequest) (models.CheckoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.CheckoutResponse{}, fmt.Errorf("marshal order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/create", bytes.NewReader(body))
	if err != nil {
		return models.CheckoutResponse{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return models.CheckoutResponse{}, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	var out models.CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.CheckoutResponse{}, fmt.Errorf("decode order response (status %d): %w", resp.StatusCode, err)
	}
	return out, nil
}
