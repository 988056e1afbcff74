package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartcart/internal/domain"
	"smartcart/internal/state"
)

// SessionServiceInterface is a hand-written testify mock of
// service.SessionServiceInterface for handler tests.
type SessionServiceInterface struct {
	mock.Mock
}

func NewSessionServiceInterface(t testingT) *SessionServiceInterface {
	m := &SessionServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionServiceInterface) StartSession(ctx context.Context, cartID, userID string) (*domain.ShoppingSession, error) {
	args := m.Called(ctx, cartID, userID)
	session, _ := args.Get(0).(*domain.ShoppingSession)
	return session, args.Error(1)
}

func (m *SessionServiceInterface) AddItem(ctx context.Context, barcode, sessionID string) (*domain.SessionItem, error) {
	args := m.Called(ctx, barcode, sessionID)
	item, _ := args.Get(0).(*domain.SessionItem)
	return item, args.Error(1)
}

func (m *SessionServiceInterface) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *SessionServiceInterface) RemoveItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *SessionServiceInterface) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *SessionServiceInterface) Checkout(ctx context.Context, sessionID, paymentMethod string, discountAmount float64) (*domain.Order, error) {
	args := m.Called(ctx, sessionID, paymentMethod, discountAmount)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *SessionServiceInterface) OrderHistory(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *SessionServiceInterface) Current() state.Snapshot {
	args := m.Called()
	snap, _ := args.Get(0).(state.Snapshot)
	return snap
}

func (m *SessionServiceInterface) Watch() (<-chan state.Snapshot, func()) {
	args := m.Called()
	ch, _ := args.Get(0).(<-chan state.Snapshot)
	cancel, _ := args.Get(1).(func())
	return ch, cancel
}
