package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/inference"
	"github.com/devfolio/portfolio-api/internal/repository"
)

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// keywordEmbedder maps text onto a two-axis space: audio-ish vs furniture-ish.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	lower := strings.ToLower(text)
	vec := []float64{0.01, 0.01}
	for _, w := range []string{"audio", "headphones", "speaker", "sound"} {
		if strings.Contains(lower, w) {
			vec[0]++
		}
	}
	for _, w := range []string{"chair", "furniture", "desk"} {
		if strings.Contains(lower, w) {
			vec[1]++
		}
	}
	return vec, nil
}

func newTestRecommendationService(embedder inference.Embedder) *RecommendationService {
	products := repository.NewMemoryProductRepository(repository.DemoCatalog())
	return NewRecommendationService(products, embedder, zap.NewNop())
}

func TestPreferenceText(t *testing.T) {
	assert.Equal(t, "music", PreferenceText("music", nil))
	assert.Equal(t,
		"music User has shown interest in: Electronics, Home. Products in cart: Smart Watch Pro, Minimalist Desk Lamp",
		PreferenceText("music", []CartItemRef{
			{ID: "2", Name: "Smart Watch Pro", Category: "Electronics"},
			{ID: "3", Name: "Minimalist Desk Lamp", Category: "Home"},
		}))
}

func TestRecommendationService_RanksBySimilarity(t *testing.T) {
	svc := newTestRecommendationService(keywordEmbedder{})

	recs, err := svc.Recommend(context.Background(), RecommendationInput{
		Preferences: "great sound and audio",
		CartItems:   []CartItemRef{{ID: "1", Name: "Wireless Bluetooth Headphones", Category: "Electronics"}},
	})
	require.NoError(t, err)

	require.Len(t, recs, 5)
	for _, r := range recs {
		assert.NotEqual(t, "1", r.ID)
	}
	assert.Equal(t, "8", recs[0].ID)
	assert.Equal(t, "Based on your interest in Electronics", recs[0].RecommendationReason)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].RecommendationScore, recs[i].RecommendationScore)
	}
}

func TestRecommendationService_FallsBackToNewest(t *testing.T) {
	m := &MockEmbedder{}
	m.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("model loading"))
	svc := newTestRecommendationService(m)

	recs, err := svc.Recommend(context.Background(), RecommendationInput{Preferences: "anything"})
	require.NoError(t, err)

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
		assert.Zero(t, r.RecommendationScore)
	}
	assert.Equal(t, []string{"8", "7", "6", "5"}, ids)
}

func TestRecommendationService_NoEmbedder(t *testing.T) {
	svc := NewRecommendationService(repository.NewMemoryProductRepository(repository.DemoCatalog()), nil, zap.NewNop())

	recs, err := svc.Recommend(context.Background(), RecommendationInput{})
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}
