package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/service"
)

// ProductsHandler serves the storefront catalog.
type ProductsHandler struct {
	products *service.ProductService
}

func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products?category=.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}
