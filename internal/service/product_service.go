package service

import (
	"context"
	"strings"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

// ProductService exposes the storefront catalog.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns the catalog newest first, optionally narrowed to one category.
func (s *ProductService) List(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{Category: strings.TrimSpace(category)})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch products", err)
	}
	return products, nil
}
