package dto

import (
	"github.com/devfolio/portfolio-api/internal/domain"
)

// AddToCartRequest is the body of POST /api/cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartRequest is the body of PUT /api/cart. Both fields are required.
type UpdateCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// CartItemResponse is one cart line with its product.
type CartItemResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   *domain.Product `json:"product"`
}

// MessageResponse carries a bare status message.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewCartItemResponse(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product:   item.Product,
	}
}

func NewCartResponse(items []domain.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewCartItemResponse(&items[i]))
	}
	return out
}
