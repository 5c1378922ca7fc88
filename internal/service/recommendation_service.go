package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/inference"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const (
	maxRecommendations = 5
	fallbackProducts   = 4
	embeddingFanOut    = 4
)

// CartItemRef is the slim cart line a client sends along with its preferences.
type CartItemRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// RecommendationInput describes what the shopper is interested in.
type RecommendationInput struct {
	Preferences string
	CartItems   []CartItemRef
	UserID      string
}

// RecommendedProduct is a catalog product with its similarity score.
type RecommendedProduct struct {
	domain.Product
	RecommendationScore  float64 `json:"recommendationScore,omitempty"`
	RecommendationReason string  `json:"recommendationReason,omitempty"`
}

// RecommendationService ranks catalog products against shopper preferences by embedding similarity.
type RecommendationService struct {
	products repository.ProductRepository
	embedder inference.Embedder
	logger   *zap.Logger
}

// NewRecommendationService builds the service. A nil embedder always serves the newest products.
func NewRecommendationService(products repository.ProductRepository, embedder inference.Embedder, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{products: products, embedder: embedder, logger: logger}
}

// Recommend returns up to five products ranked by similarity. When scoring is not possible
// the four newest products are returned instead, without scores.
func (s *RecommendationService) Recommend(ctx context.Context, in RecommendationInput) ([]RecommendedProduct, error) {
	recs, err := s.rank(ctx, in)
	if err == nil {
		return recs, nil
	}
	s.logger.Warn("recommendation scoring failed, serving newest products",
		zap.String("user_id", in.UserID), zap.Error(err))
	return s.newest(ctx)
}

// PreferenceText joins free-form preferences with what is already in the cart.
func PreferenceText(preferences string, cart []CartItemRef) string {
	text := preferences
	if len(cart) == 0 {
		return text
	}
	categories := make([]string, 0, len(cart))
	names := make([]string, 0, len(cart))
	for _, item := range cart {
		categories = append(categories, item.Category)
		names = append(names, item.Name)
	}
	return fmt.Sprintf("%s User has shown interest in: %s. Products in cart: %s",
		text, strings.Join(categories, ", "), strings.Join(names, ", "))
}

func (s *RecommendationService) rank(ctx context.Context, in RecommendationInput) ([]RecommendedProduct, error) {
	if s.embedder == nil {
		return nil, inference.ErrNotConfigured
	}

	catalog, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	inCart := make(map[string]struct{}, len(in.CartItems))
	for _, item := range in.CartItems {
		inCart[item.ID] = struct{}{}
	}
	candidates := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := inCart[p.ID]; !ok {
			candidates = append(candidates, p)
		}
	}

	userVec, err := s.embedder.Embed(ctx, PreferenceText(in.Preferences, in.CartItems))
	if err != nil {
		return nil, fmt.Errorf("embed preferences: %w", err)
	}

	scored := make([]RecommendedProduct, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embeddingFanOut)
	for i, p := range candidates {
		g.Go(func() error {
			vec, err := s.embedder.Embed(gctx, fmt.Sprintf("%s %s %s", p.Name, p.Description, p.Category))
			if err != nil {
				return fmt.Errorf("embed product %s: %w", p.ID, err)
			}
			score, err := inference.CosineSimilarity(userVec, vec)
			if err != nil {
				return err
			}
			scored[i] = RecommendedProduct{
				Product:              p,
				RecommendationScore:  score,
				RecommendationReason: "Based on your interest in " + p.Category,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})
	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored, nil
}

func (s *RecommendationService) newest(ctx context.Context) ([]RecommendedProduct, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{Limit: fallbackProducts})
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to get recommendations", err)
	}
	out := make([]RecommendedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, RecommendedProduct{Product: p})
	}
	return out, nil
}
