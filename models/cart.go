package models

import "time"

// CartItem is one product line in a user's cart. Name, price and
// image are captured at add-time so the cart renders without a
// catalog lookup.
type CartItem struct {
	UserID    string    `json:"userId,omitempty" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Name      string    `json:"name" bson:"name"`
	Price     int64     `json:"price" bson:"price"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// CartTotal recomputes the cart total on every call; nothing caches it.
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}
