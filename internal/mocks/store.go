package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartcart/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// Store is a hand-written testify mock of service.Store.
type Store struct {
	mock.Mock
}

func NewStore(t testingT) *Store {
	m := &Store{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Store) CartByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID)
	cart, _ := args.Get(0).(*domain.Cart)
	return cart, args.Error(1)
}

func (m *Store) UpdateCartStatus(ctx context.Context, cartID, status string) error {
	return m.Called(ctx, cartID, status).Error(0)
}

func (m *Store) InsertSession(ctx context.Context, session *domain.ShoppingSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *Store) CompleteSession(ctx context.Context, sessionID string, completedAt int64, totalAmount float64) error {
	return m.Called(ctx, sessionID, completedAt, totalAmount).Error(0)
}

func (m *Store) Products(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *Store) ProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *Store) ProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *Store) SessionItems(ctx context.Context, sessionID string) ([]domain.SessionItem, error) {
	args := m.Called(ctx, sessionID)
	items, _ := args.Get(0).([]domain.SessionItem)
	return items, args.Error(1)
}

func (m *Store) SessionItemByBarcode(ctx context.Context, sessionID, barcode string) (*domain.SessionItem, error) {
	args := m.Called(ctx, sessionID, barcode)
	item, _ := args.Get(0).(*domain.SessionItem)
	return item, args.Error(1)
}

func (m *Store) SessionItemByID(ctx context.Context, itemID string) (*domain.SessionItem, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(*domain.SessionItem)
	return item, args.Error(1)
}

func (m *Store) InsertSessionItem(ctx context.Context, item *domain.SessionItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *Store) UpdateSessionItemQuantity(ctx context.Context, itemID string, quantity int, totalPrice float64) error {
	return m.Called(ctx, itemID, quantity, totalPrice).Error(0)
}

func (m *Store) DeleteSessionItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *Store) InsertOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *Store) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *Store) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *Store) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *Store) InsertUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
