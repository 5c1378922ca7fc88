package domain

import "time"

// CartItem is one product line in a user's cart. Quantity is always >= 1 once stored.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	Product   *Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
