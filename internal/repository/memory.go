package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// In-memory implementations stand in for Postgres when no DSN is configured.

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns a process-local user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

type memoryProductRepository struct {
	products []domain.Product
}

// NewMemoryProductRepository serves a fixed catalog.
func NewMemoryProductRepository(products []domain.Product) ProductRepository {
	sorted := append([]domain.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return &memoryProductRepository{products: sorted}
}

func (r *memoryProductRepository) List(_ context.Context, filter ProductFilter) ([]domain.Product, error) {
	category := strings.TrimSpace(filter.Category)
	result := []domain.Product{}
	for _, p := range r.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		result = append(result, p)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *memoryProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProductRepository) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	result := []domain.Product{}
	for _, p := range r.products {
		if _, ok := wanted[p.ID]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

type cartKey struct {
	userID    string
	productID string
}

type memoryCartRepository struct {
	mu       sync.Mutex
	items    map[cartKey]*domain.CartItem
	products ProductRepository
}

// NewMemoryCartRepository keeps carts in process memory, joining products from the given catalog.
func NewMemoryCartRepository(products ProductRepository) CartRepository {
	return &memoryCartRepository{items: make(map[cartKey]*domain.CartItem), products: products}
}

func (r *memoryCartRepository) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	items := make([]domain.CartItem, 0)
	for key, item := range r.items {
		if key.userID == userID {
			items = append(items, *item)
		}
	}
	r.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	for i := range items {
		product, err := r.products.GetByID(ctx, items[i].ProductID)
		if err != nil && err != ErrNotFound {
			return nil, err
		}
		items[i].Product = product
	}
	return items, nil
}

func (r *memoryCartRepository) Get(_ context.Context, userID, productID string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[cartKey{userID, productID}]
	if !ok {
		return nil, ErrNotFound
	}
	out := *item
	return &out, nil
}

func (r *memoryCartRepository) AddQuantity(_ context.Context, userID, productID string, delta int) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := cartKey{userID, productID}
	item, ok := r.items[key]
	if !ok {
		item = &domain.CartItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: productID,
			CreatedAt: now,
		}
		r.items[key] = item
	}
	item.Quantity += delta
	item.UpdatedAt = now
	out := *item
	return &out, nil
}

func (r *memoryCartRepository) SetQuantity(_ context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[cartKey{userID, productID}]
	if !ok {
		return nil, ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now().UTC()
	out := *item
	return &out, nil
}

func (r *memoryCartRepository) Delete(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID, productID}
	if _, ok := r.items[key]; !ok {
		return ErrNotFound
	}
	delete(r.items, key)
	return nil
}

type memoryContactRepository struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
}

// NewMemoryContactRepository keeps submissions in process memory.
func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{}
}

func (r *memoryContactRepository) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memoryContactRepository) List(_ context.Context, limit int) ([]domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	result := make([]domain.ContactMessage, 0, min(limit, len(r.messages)))
	for i := len(r.messages) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.messages[i])
	}
	return result, nil
}
