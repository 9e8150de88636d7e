package models

import "time"

// Order statuses progress forward only. Cancellation is allowed
// while the order is still processing or shipped.
const (
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// the next.
func CanTransition(from, to string) bool {
	switch from {
	case OrderProcessing:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered || to == OrderCancelled
	}
	return false
}

// OrderItem is a product snapshot taken at order time.
type OrderItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Name      string `json:"name" bson:"name"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	Name    string `json:"name" bson:"name"`
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
	Country string `json:"country" bson:"country"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Order is immutable once created except for status transitions.
type Order struct {
	OrderID         string          `json:"id" bson:"orderId"`
	OrderNumber     string          `json:"orderNumber" bson:"orderNumber"`
	UserID          string          `json:"userId" bson:"userId"`
	Status          string          `json:"status" bson:"status"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	ShippingMethod  string          `json:"shippingMethod" bson:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	LastFourDigits  string          `json:"lastFourDigits,omitempty" bson:"lastFourDigits,omitempty"`
	Subtotal        int64           `json:"subtotal" bson:"subtotal"`
	Shipping        int64           `json:"shipping" bson:"shipping"`
	Tax             int64           `json:"tax" bson:"tax"`
	Total           int64           `json:"total" bson:"total"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}
