package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/service"
)

// CartHandler exposes the signed-in user's cart. All routes sit behind RequireAuth.
type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	items, err := h.cart.List(c.UserContext(), mustSession(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCartResponse(items))
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.cart.Add(c.UserContext(), mustSession(c).UserID, req.ProductID, quantity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCartItemResponse(item))
}

// Update handles PUT /api/cart. A quantity of zero or less removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.ProductID == "" || req.Quantity == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	item, err := h.cart.Update(c.UserContext(), mustSession(c).UserID, req.ProductID, *req.Quantity)
	if err != nil {
		return err
	}
	if item == nil {
		return c.JSON(dto.MessageResponse{Message: service.MsgCartItemRemoved})
	}
	return c.JSON(dto.NewCartItemResponse(item))
}

// Remove handles DELETE /api/cart?productId=.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.cart.Remove(c.UserContext(), mustSession(c).UserID, c.Query("productId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: service.MsgCartItemRemoved})
}
