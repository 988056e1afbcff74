package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartcart/internal/domain"
	"smartcart/internal/state"
)

var (
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartUnavailable      = errors.New("cart is currently in use")
	ErrProductNotFound      = errors.New("product not found")
	ErrSessionAlreadyActive = errors.New("a shopping session is already active")
	ErrNoActiveSession      = errors.New("no active shopping session")
	ErrNegativeDiscount     = errors.New("discount amount must not be negative")
)

// SessionService sequences cart claiming, item scanning, quantity mutation
// and checkout against the remote row store, and publishes every change to
// the injected SessionState. Mutating operations are serialized by a mutex so
// a rapid double scan cannot lose an increment on the read-then-write merge.
type SessionService struct {
	store     Store
	cache     ProductCache
	publisher CheckoutPublisher
	state     *state.SessionState

	mu sync.Mutex
}

func NewSessionService(store Store, cache ProductCache, publisher CheckoutPublisher, sessionState *state.SessionState) *SessionService {
	return &SessionService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		state:     sessionState,
	}
}

func (s *SessionService) Current() state.Snapshot {
	return s.state.Snapshot()
}

func (s *SessionService) Watch() (<-chan state.Snapshot, func()) {
	return s.state.Subscribe()
}

// StartSession claims the cart and creates a new active session. The
// availability check and the claim are separate remote calls; two concurrent
// starts against the same cart can both pass the check. The store offers no
// conditional update, so the claim stays best effort.
func (s *SessionService) StartSession(ctx context.Context, cartID, userID string) (*domain.ShoppingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.state.Session(); cur != nil && cur.Status == domain.SessionActive {
		return nil, ErrSessionAlreadyActive
	}

	s.ensureUser(ctx, userID)

	cart, err := s.store.CartByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("look up cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if cart.Status != domain.CartAvailable {
		return nil, ErrCartUnavailable
	}

	session := &domain.ShoppingSession{
		SessionID: uuid.NewString(),
		CartID:    cartID,
		UserID:    userID,
		Status:    domain.SessionActive,
		StartedAt: time.Now().UnixMilli(),
	}
	if err := s.store.InsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.store.UpdateCartStatus(ctx, cartID, domain.CartInUse); err != nil {
		return nil, fmt.Errorf("claim cart: %w", err)
	}

	s.state.SetSession(session)
	s.reloadItems(ctx, session.SessionID)
	log.Printf("started session %s on cart %s for user %s", session.SessionID, cartID, userID)
	return session, nil
}

// AddItem merges a scanned barcode into the session: a repeat scan increments
// the existing line instead of creating a duplicate row.
func (s *SessionService) AddItem(ctx context.Context, barcode, sessionID string) (*domain.SessionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.lookupProduct(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.store.SessionItemByBarcode(ctx, session.SessionID, barcode)
	if err != nil {
		return nil, fmt.Errorf("look up session item: %w", err)
	}

	var item *domain.SessionItem
	if existing != nil {
		quantity := existing.Quantity + 1
		total := float64(quantity) * existing.UnitPrice
		if err := s.store.UpdateSessionItemQuantity(ctx, existing.ItemID, quantity, total); err != nil {
			return nil, fmt.Errorf("update quantity: %w", err)
		}
		updated := *existing
		updated.Quantity = quantity
		updated.TotalPrice = total
		item = &updated
	} else {
		item = &domain.SessionItem{
			ItemID:     uuid.NewString(),
			SessionID:  session.SessionID,
			ProductID:  product.ProductID,
			Barcode:    barcode,
			Quantity:   1,
			UnitPrice:  product.Price,
			TotalPrice: product.Price,
			ScannedBy:  "customer",
		}
		if err := s.store.InsertSessionItem(ctx, item); err != nil {
			return nil, fmt.Errorf("insert session item: %w", err)
		}
	}

	// Re-read instead of patching local state so concurrent writers (a store
	// scanning device, a second app instance) are picked up.
	s.reloadItems(ctx, session.SessionID)
	return item, nil
}

// UpdateQuantity sets a new quantity on a line item. A quantity of zero or
// less removes the item.
func (s *SessionService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession("")
	if err != nil {
		return err
	}

	item, err := s.store.SessionItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("look up session item: %w", err)
	}
	if item == nil {
		// Already gone; re-reading below keeps the published list honest.
		s.reloadItems(ctx, session.SessionID)
		return nil
	}

	total := float64(quantity) * item.UnitPrice
	if err := s.store.UpdateSessionItemQuantity(ctx, itemID, quantity, total); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	s.reloadItems(ctx, session.SessionID)
	return nil
}

func (s *SessionService) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession("")
	if err != nil {
		return err
	}

	if err := s.store.DeleteSessionItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete session item: %w", err)
	}

	s.reloadItems(ctx, session.SessionID)
	return nil
}

func (s *SessionService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *SessionService) OrderHistory(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.store.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Checkout freezes the session's totals into a permanent order, completes the
// session and releases the cart. The four writes are not atomic: the order is
// created first so a failure there aborts cleanly, order items may be partial
// (logged, reconciled out of band), and a crash between session completion
// and cart release leaves the cart claimed until reconciled.
func (s *SessionService) Checkout(ctx context.Context, sessionID, paymentMethod string, discountAmount float64) (*domain.Order, error) {
	if discountAmount < 0 {
		return nil, ErrNegativeDiscount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	snap := s.state.Snapshot()
	var totalAmount float64
	for _, item := range snap.Items {
		totalAmount += item.TotalPrice
	}
	finalAmount := totalAmount - discountAmount
	if finalAmount < 0 {
		finalAmount = 0
	}

	order := &domain.Order{
		OrderID:        uuid.NewString(),
		SessionID:      session.SessionID,
		UserID:         session.UserID,
		TotalAmount:    totalAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  "completed",
		OrderStatus:    "completed",
	}
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, item := range snap.Items {
		orderItem := domain.OrderItem{
			OrderItemID: uuid.NewString(),
			OrderID:     order.OrderID,
			ProductID:   item.ProductID,
			Barcode:     item.Barcode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			ProductName: "Unknown Product",
		}
		// Missing product data must not abort checkout; the snapshot just
		// carries a placeholder name.
		if product, err := s.store.ProductByID(ctx, item.ProductID); err != nil {
			log.Printf("checkout: could not resolve product %s: %v", item.ProductID, err)
		} else if product != nil {
			orderItem.ProductName = product.Name
			orderItem.Category = product.Category
		}
		if err := s.store.InsertOrderItem(ctx, &orderItem); err != nil {
			log.Printf("checkout: could not record order item %s: %v", orderItem.OrderItemID, err)
		}
	}

	completedAt := time.Now().UnixMilli()
	if err := s.store.CompleteSession(ctx, session.SessionID, completedAt, totalAmount); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	if err := s.store.UpdateCartStatus(ctx, session.CartID, domain.CartAvailable); err != nil {
		return nil, fmt.Errorf("release cart: %w", err)
	}

	if s.publisher != nil {
		event := domain.CheckoutEvent{
			Type:        "order_completed",
			OrderID:     order.OrderID,
			SessionID:   session.SessionID,
			UserID:      session.UserID,
			TotalAmount: totalAmount,
			FinalAmount: finalAmount,
			ItemCount:   len(snap.Items),
			Timestamp:   time.Now(),
		}
		if err := s.publisher.PublishCheckout(ctx, event); err != nil {
			log.Printf("checkout: could not publish event for order %s: %v", order.OrderID, err)
		}
	}

	s.state.Clear()
	log.Printf("checkout completed: order %s, %d items, final amount %.2f", order.OrderID, len(snap.Items), finalAmount)
	return order, nil
}

// reloadItems re-reads the session's items from the store and republishes
// them. The store stays the system of record; a failed reload keeps the last
// published list and is logged.
func (s *SessionService) reloadItems(ctx context.Context, sessionID string) {
	items, err := s.store.SessionItems(ctx, sessionID)
	if err != nil {
		log.Printf("could not reload items for session %s: %v", sessionID, err)
		return
	}
	s.state.SetItems(items)
}

// activeSession returns the current session, requiring it to be active and,
// when sessionID is non-empty, to match it.
func (s *SessionService) activeSession(sessionID string) (*domain.ShoppingSession, error) {
	session := s.state.Session()
	if session == nil || session.Status != domain.SessionActive {
		return nil, ErrNoActiveSession
	}
	if sessionID != "" && session.SessionID != sessionID {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// lookupProduct consults the cache before the store; cache failures are
// logged, never surfaced.
func (s *SessionService) lookupProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.Product(ctx, barcode); err != nil {
			log.Printf("product cache read failed for %s: %v", barcode, err)
		} else if product != nil {
			return product, nil
		}
	}

	product, err := s.store.ProductByBarcode(ctx, barcode)
	if err != nil || product == nil {
		return product, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			log.Printf("product cache write failed for %s: %v", barcode, err)
		}
	}
	return product, nil
}

// ensureUser creates the user row on first sight. This is a side step: a
// failure is logged and the session start continues.
func (s *SessionService) ensureUser(ctx context.Context, userID string) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		log.Printf("could not check user %s (continuing): %v", userID, err)
		return
	}
	if user != nil {
		return
	}
	newUser := &domain.User{
		UserID: userID,
		Email:  userID + "@smartcart.local",
		Name:   "Guest User",
	}
	if err := s.store.InsertUser(ctx, newUser); err != nil {
		log.Printf("could not create user %s (continuing): %v", userID, err)
		return
	}
	log.Printf("created user %s", userID)
}
