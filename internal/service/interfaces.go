package service

import (
	"context"

	"smartcart/internal/domain"
	"smartcart/internal/state"
)

type SessionServiceInterface interface {
	StartSession(ctx context.Context, cartID, userID string) (*domain.ShoppingSession, error)
	AddItem(ctx context.Context, barcode, sessionID string) (*domain.SessionItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Checkout(ctx context.Context, sessionID, paymentMethod string, discountAmount float64) (*domain.Order, error)
	OrderHistory(ctx context.Context, userID string) ([]domain.Order, error)
	Current() state.Snapshot
	Watch() (<-chan state.Snapshot, func())
}

// Store is the filtered CRUD surface of the remote row store the session
// service depends on. The store is the system of record; local state is a
// cache kept in sync by re-reading after each mutation.
type Store interface {
	CartByID(ctx context.Context, cartID string) (*domain.Cart, error)
	UpdateCartStatus(ctx context.Context, cartID, status string) error

	InsertSession(ctx context.Context, session *domain.ShoppingSession) error
	CompleteSession(ctx context.Context, sessionID string, completedAt int64, totalAmount float64) error

	Products(ctx context.Context) ([]domain.Product, error)
	ProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ProductByID(ctx context.Context, productID string) (*domain.Product, error)

	SessionItems(ctx context.Context, sessionID string) ([]domain.SessionItem, error)
	SessionItemByBarcode(ctx context.Context, sessionID, barcode string) (*domain.SessionItem, error)
	SessionItemByID(ctx context.Context, itemID string) (*domain.SessionItem, error)
	InsertSessionItem(ctx context.Context, item *domain.SessionItem) error
	UpdateSessionItemQuantity(ctx context.Context, itemID string, quantity int, totalPrice float64) error
	DeleteSessionItem(ctx context.Context, itemID string) error

	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	UserByID(ctx context.Context, userID string) (*domain.User, error)
	InsertUser(ctx context.Context, user *domain.User) error
}

type ProductCache interface {
	Product(ctx context.Context, barcode string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
}

type CheckoutPublisher interface {
	PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error
}

type QRGenerator interface {
	Encode(cartID string) ([]byte, error)
}

var _ SessionServiceInterface = (*SessionService)(nil)
