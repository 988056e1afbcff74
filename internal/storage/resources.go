package storage

import (
	"context"

	"smartcart/internal/domain"
)

// Typed accessors over the row API, one small group per resource. These are
// what the session service programs against.

func (s *RowStore) CartByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	var carts []domain.Cart
	if err := s.Query(ctx, "carts", map[string]string{"cartId": cartID}, &carts); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, nil
	}
	return &carts[0], nil
}

func (s *RowStore) UpdateCartStatus(ctx context.Context, cartID, status string) error {
	return s.Patch(ctx, "carts", map[string]string{"cartId": cartID}, domain.CartStatusUpdate{Status: status})
}

func (s *RowStore) InsertSession(ctx context.Context, session *domain.ShoppingSession) error {
	return s.Insert(ctx, "shopping_sessions", session)
}

func (s *RowStore) CompleteSession(ctx context.Context, sessionID string, completedAt int64, totalAmount float64) error {
	return s.Patch(ctx, "shopping_sessions", map[string]string{"sessionId": sessionID}, domain.SessionCompletionUpdate{
		Status:      domain.SessionCompleted,
		CompletedAt: completedAt,
		TotalAmount: totalAmount,
	})
}

func (s *RowStore) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.Query(ctx, "products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *RowStore) ProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var products []domain.Product
	if err := s.Query(ctx, "products", map[string]string{"barcode": barcode}, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (s *RowStore) ProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var products []domain.Product
	if err := s.Query(ctx, "products", map[string]string{"productId": productID}, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (s *RowStore) SessionItems(ctx context.Context, sessionID string) ([]domain.SessionItem, error) {
	var items []domain.SessionItem
	if err := s.Query(ctx, "session_items", map[string]string{"sessionId": sessionID}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RowStore) SessionItemByBarcode(ctx context.Context, sessionID, barcode string) (*domain.SessionItem, error) {
	var items []domain.SessionItem
	filters := map[string]string{"sessionId": sessionID, "barcode": barcode}
	if err := s.Query(ctx, "session_items", filters, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (s *RowStore) SessionItemByID(ctx context.Context, itemID string) (*domain.SessionItem, error) {
	var items []domain.SessionItem
	if err := s.Query(ctx, "session_items", map[string]string{"itemId": itemID}, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (s *RowStore) InsertSessionItem(ctx context.Context, item *domain.SessionItem) error {
	return s.Insert(ctx, "session_items", item)
}

func (s *RowStore) UpdateSessionItemQuantity(ctx context.Context, itemID string, quantity int, totalPrice float64) error {
	return s.Patch(ctx, "session_items", map[string]string{"itemId": itemID}, domain.ItemQuantityUpdate{
		Quantity:   quantity,
		TotalPrice: totalPrice,
	})
}

func (s *RowStore) DeleteSessionItem(ctx context.Context, itemID string) error {
	return s.Delete(ctx, "session_items", map[string]string{"itemId": itemID})
}

func (s *RowStore) InsertOrder(ctx context.Context, order *domain.Order) error {
	return s.Insert(ctx, "orders", order)
}

func (s *RowStore) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	return s.Insert(ctx, "order_items", item)
}

func (s *RowStore) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.Query(ctx, "orders", map[string]string{"userId": userID}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *RowStore) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	var users []domain.User
	if err := s.Query(ctx, "users", map[string]string{"userId": userID}, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *RowStore) InsertUser(ctx context.Context, user *domain.User) error {
	return s.Insert(ctx, "users", user)
}
