package domain

import "time"

// Status values stored in the remote carts and shopping_sessions tables.
const (
	CartAvailable = "available"
	CartInUse     = "in_use"

	SessionActive    = "active"
	SessionCompleted = "completed"
)

// JSON field names follow the remote table columns, which use camelCase.

type Cart struct {
	CartID        string  `json:"cartId"`
	Status        string  `json:"status"`
	QRCodeData    *string `json:"qrCodeData,omitempty"`
	StoreLocation *string `json:"storeLocation,omitempty"`
}

type ShoppingSession struct {
	SessionID   string  `json:"sessionId"`
	CartID      string  `json:"cartId"`
	UserID      string  `json:"userId"`
	Status      string  `json:"status"`
	StartedAt   int64   `json:"startedAt"`
	CompletedAt *int64  `json:"completedAt,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
}

type Product struct {
	ProductID     string  `json:"productId"`
	Barcode       string  `json:"barcode"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Price         float64 `json:"price"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Category      *string `json:"category,omitempty"`
	StockQuantity int     `json:"stockQuantity"`
}

type SessionItem struct {
	ItemID     string  `json:"itemId"`
	SessionID  string  `json:"sessionId"`
	ProductID  string  `json:"productId"`
	Barcode    string  `json:"barcode"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	ScannedBy  string  `json:"scannedBy"`
}

type Order struct {
	OrderID        string  `json:"orderId"`
	SessionID      string  `json:"sessionId"`
	UserID         string  `json:"userId"`
	TotalAmount    float64 `json:"totalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
	PaymentMethod  string  `json:"paymentMethod"`
	PaymentStatus  string  `json:"paymentStatus"`
	OrderStatus    string  `json:"orderStatus"`
}

// OrderItem is a denormalized snapshot of a purchased line. Product name and
// category are copied at checkout so later product edits never rewrite history.
type OrderItem struct {
	OrderItemID string  `json:"orderItemId"`
	OrderID     string  `json:"orderId"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Barcode     string  `json:"barcode"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
	Category    *string `json:"category,omitempty"`
}

type User struct {
	UserID string  `json:"userId"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
}

// Partial update bodies for PATCH calls.

type CartStatusUpdate struct {
	Status string `json:"status"`
}

type SessionCompletionUpdate struct {
	Status      string  `json:"status"`
	CompletedAt int64   `json:"completedAt"`
	TotalAmount float64 `json:"totalAmount"`
}

type ItemQuantityUpdate struct {
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// CheckoutEvent is emitted to Kafka after a completed checkout so downstream
// consumers (analytics, receipts) can react without polling the store.
type CheckoutEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId"`
	TotalAmount float64   `json:"totalAmount"`
	FinalAmount float64   `json:"finalAmount"`
	ItemCount   int       `json:"itemCount"`
	Timestamp   time.Time `json:"timestamp"`
}
