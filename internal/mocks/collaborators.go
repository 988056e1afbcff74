package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartcart/internal/domain"
)

type ProductCache struct {
	mock.Mock
}

func NewProductCache(t testingT) *ProductCache {
	m := &ProductCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProductCache) Product(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

type CheckoutPublisher struct {
	mock.Mock
}

func NewCheckoutPublisher(t testingT) *CheckoutPublisher {
	m := &CheckoutPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CheckoutPublisher) PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error {
	return m.Called(ctx, event).Error(0)
}
