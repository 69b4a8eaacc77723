package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cumall/cart-service/internal/models"
	"github.com/cumall/cart-service/internal/session"
	"github.com/cumall/cart-service/internal/storage"
)

// cartKey is the single storage key the serialized cart lives under.
const cartKey = "cart"

// defaultCheckoutTimeout bounds the order-creation call; the upstream
// client had none, which left a failed network path pending forever.
const defaultCheckoutTimeout = 15 * time.Second

// Notification is a fire-and-forget message for the UI toast surface.
type Notification struct {
	Title       string
	Description string
	Severity    string
}

const (
	SeverityInfo  = "info"
	SeverityError = "destructive"
)

// Notifier receives cart events. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// OrderPlacer submits a checkout request to the order backend.
type OrderPlacer interface {
	Create(ctx context.Context, token string, req models.CheckoutRequest) (models.CheckoutResponse, error)
}

// Service owns the session's cart: an ordered list of line items with
// at most one line per product id, persisted after every mutation and
// hydrated from storage on startup.
type Service struct {
	store    storage.KV
	notifier Notifier
	orders   OrderPlacer
	identity func() session.Identity
	timeout  time.Duration

	mu          sync.Mutex
	items       []models.LineItem
	checkingOut bool
}

// NewService hydrates the cart from the store. A missing or corrupt
// snapshot starts an empty cart; startup never fails on bad state.
func NewService(store storage.KV, notifier Notifier, orders OrderPlacer, identity func() session.Identity) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		orders:   orders,
		identity: identity,
		timeout:  defaultCheckoutTimeout,
	}

	raw, ok, err := store.Get(context.Background(), cartKey)
	if err != nil {
		log.Printf("cart: hydrate read failed, starting empty: %v", err)
		return s
	}
	if !ok {
		return s
	}
	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("cart: corrupt snapshot, starting empty: %v", err)
		return s
	}
	s.items = items
	return s
}

// SetCheckoutTimeout overrides the bound on the order-creation call.
func (s *Service) SetCheckoutTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.timeout = d
	}
}

// AddItem puts an item into the cart. If a line with the same id
// already exists only its quantity grows; name, price, category and
// image keep the values from the first insert. New ids append at the
// end so the cart keeps insertion order.
func (s *Service) AddItem(ctx context.Context, item models.LineItem) {
	s.mu.Lock()
	var n Notification
	if idx := s.indexOf(item.ID); idx >= 0 {
		s.items[idx].Quantity += item.Quantity
		n = Notification{
			Title:       "Cart Updated",
			Description: fmt.Sprintf("%s quantity increased to %d", s.items[idx].Name, s.items[idx].Quantity),
			Severity:    SeverityInfo,
		}
	} else {
		s.items = append(s.items, item)
		n = Notification{
			Title:       "Added to Cart",
			Description: fmt.Sprintf("%s added to your cart", item.Name),
			Severity:    SeverityInfo,
		}
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(n)
}

// RemoveItem deletes the line matching id. Removing an absent id is a
// harmless no-op and raises no notification.
func (s *Service) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	name := s.items[idx].Name
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(Notification{
		Title:       "Removed from Cart",
		Description: fmt.Sprintf("%s removed from your cart", name),
		Severity:    SeverityInfo,
	})
}

// UpdateQuantity sets the quantity on an existing line. A quantity of
// zero or less removes the line instead.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.items[idx].Quantity = quantity
	s.persist(ctx)
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(Notification{
		Title:       "Cart Cleared",
		Description: "All items have been removed from your cart",
		Severity:    SeverityInfo,
	})
}

// Items returns a copy of the cart in insertion order.
func (s *Service) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price * quantity across all lines.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Checkout submits the cart to the order backend exactly once.
//
// Preconditions are checked locally first: an authenticated identity
// and a non-empty cart, otherwise no network call is made. Only one
// checkout may be in flight per service; a concurrent call is rejected
// so the same items cannot be double-submitted. On success the cart is
// cleared and the order id and pre-checkout total are returned for the
// caller to navigate with. On any failure the cart is left untouched
// and the user retries explicitly; there is no automatic retry.
func (s *Service) Checkout(ctx context.Context) models.CheckoutResult {
	id := s.identity()
	if !id.Authenticated() {
		s.notifier.Notify(Notification{
			Title:       "Authentication Required",
			Description: "Please login to complete your order",
			Severity:    SeverityError,
		})
		return models.CheckoutResult{Success: false, Message: "authentication required"}
	}

	s.mu.Lock()
	if s.checkingOut {
		s.mu.Unlock()
		s.notifier.Notify(Notification{
			Title:       "Checkout In Progress",
			Description: "Your order is already being placed",
			Severity:    SeverityError,
		})
		return models.CheckoutResult{Success: false, Message: "checkout already in progress"}
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		s.notifier.Notify(Notification{
			Title:       "Empty Cart",
			Description: "Your cart is empty",
			Severity:    SeverityError,
		})
		return models.CheckoutResult{Success: false, Message: "cart is empty"}
	}
	s.checkingOut = true
	orderItems := make([]models.OrderItem, 0, len(s.items))
	total := 0.0
	for _, it := range s.items {
		orderItems = append(orderItems, models.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Category: it.Category,
		})
		total += it.Price * float64(it.Quantity)
	}
	timeout := s.timeout
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.checkingOut = false
		s.mu.Unlock()
	}()

	req := models.CheckoutRequest{
		OrderedBy:  id.Email,
		State:      0,
		RoomNumber: id.RoomNumber,
		Hall:       id.Hall,
		Items:      orderItems,
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.orders.Create(callCtx, id.Token, req)
	if err != nil {
		log.Printf("cart: checkout failed: %v", err)
		s.notifier.Notify(Notification{
			Title:       "Checkout Error",
			Description: "An error occurred during checkout. Please try again.",
			Severity:    SeverityError,
		})
		return models.CheckoutResult{Success: false, Message: "checkout error"}
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Could not complete your order"
		}
		s.notifier.Notify(Notification{
			Title:       "Checkout Failed",
			Description: msg,
			Severity:    SeverityError,
		})
		return models.CheckoutResult{Success: false, Message: msg}
	}

	orderID := resp.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
	}

	s.Clear(ctx)
	s.notifier.Notify(Notification{
		Title:       "Order Placed Successfully",
		Description: "Thank you for your purchase!",
		Severity:    SeverityInfo,
	})

	return models.CheckoutResult{
		Success: true,
		OrderID: orderID,
		Total:   total,
	}
}

// indexOf must be called with the lock held.
func (s *Service) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held. A failed write is logged
// and otherwise swallowed; the in-memory cart stays authoritative.
func (s *Service) persist(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("cart: marshal snapshot: %v", err)
		return
	}
	if err := s.store.Set(ctx, cartKey, string(raw)); err != nil {
		log.Printf("cart: persist snapshot: %v", err)
	}
}
