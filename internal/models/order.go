package models

import "time"

// PaymentStatus tracks the payment side of an order. Under normal flow it
// transitions pending -> success|failed exactly once.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// OrderStatus tracks fulfillment. Only admins set it.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known fulfillment status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased line: name and price are
// frozen at checkout so later catalog changes never alter past orders.
type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id" validate:"required"`
	ProductName string  `bson:"product_name" json:"product_name" validate:"required"`
	Quantity    int     `bson:"quantity" json:"quantity" validate:"required,gte=1"`
	Price       float64 `bson:"price" json:"price" validate:"gte=0"`
}

// Address is the shipping destination captured at checkout.
type Address struct {
	Name    string `bson:"name" json:"name" validate:"required"`
	Phone   string `bson:"phone" json:"phone" validate:"required"`
	Street  string `bson:"street" json:"street" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	Pincode string `bson:"pincode" json:"pincode" validate:"required"`
}

// Order is the record of a completed checkout intent.
type Order struct {
	ID              string        `bson:"id" json:"id"`
	UserID          string        `bson:"user_id" json:"user_id"`
	Items           []OrderItem   `bson:"items" json:"items"`
	TotalAmount     float64       `bson:"total_amount" json:"total_amount"`
	PaymentID       string        `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	PaymentStatus   PaymentStatus `bson:"payment_status" json:"payment_status"`
	OrderStatus     OrderStatus   `bson:"order_status" json:"order_status"`
	ShippingAddress Address       `bson:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}

// AdminStats is the aggregate snapshot served to the admin dashboard.
type AdminStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalUsers    int64   `json:"total_users"`
	TotalRevenue  float64 `json:"total_revenue"`
}
