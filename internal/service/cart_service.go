package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const (
	msgProductNotFound   = "Product not found"
	msgInsufficientStock = "Insufficient stock"
	msgItemNotInCart     = "Item not found in cart"
	msgCartFetchFailed   = "Failed to fetch cart"
	msgCartUpdateFailed  = "Failed to update cart"
	msgProductIDRequired = "Product ID required"
	msgInvalidQuantity   = "Quantity must be at least 1"
	MsgCartItemRemoved   = "Item removed from cart"
)

// CartService manages per-user cart lines. A stored quantity is always at least 1.
type CartService struct {
	cart       repository.CartRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CartService {
	return &CartService{cart: cart, products: products, dispatcher: dispatcher, logger: logger}
}

// List returns the user's cart with product details.
func (s *CartService) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	items, err := s.cart.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(msgCartFetchFailed, err)
	}
	return items, nil
}

// Add puts quantity units of a product in the cart, merging with an existing line.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apperrors.NewValidationError(msgProductIDRequired, nil)
	}
	if quantity < 1 {
		return nil, apperrors.NewValidationError(msgInvalidQuantity, map[string]any{"quantity": quantity})
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(quantity) {
		return nil, apperrors.NewValidationError(msgInsufficientStock, nil)
	}

	item, err := s.cart.AddQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to add to cart", err)
	}
	if item.Product == nil {
		item.Product = product
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventCartItemAdded,
		UserID:  userID,
		Payload: events.CartItemAddedPayload{ProductID: productID, Quantity: quantity},
	})
	return item, nil
}

// Update sets a line's quantity. A quantity of zero or less removes the line
// and returns a nil item.
func (s *CartService) Update(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		if err := s.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(quantity) {
		return nil, apperrors.NewValidationError(msgInsufficientStock, nil)
	}

	item, err := s.cart.SetQuantity(ctx, userID, productID, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound(msgItemNotInCart)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(msgCartUpdateFailed, err)
	}
	if item.Product == nil {
		item.Product = product
	}
	return item, nil
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return apperrors.NewValidationError(msgProductIDRequired, nil)
	}
	err := s.cart.Delete(ctx, userID, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(msgItemNotInCart)
	}
	if err != nil {
		return apperrors.NewInternalError("Failed to remove from cart", err)
	}
	return nil
}

func (s *CartService) lookupProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound(msgProductNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(msgCartUpdateFailed, err)
	}
	return product, nil
}
