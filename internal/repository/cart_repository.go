package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// CartRepository stores cart lines keyed by (user, product).
type CartRepository interface {
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
	Get(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	// AddQuantity inserts the line or increments an existing one by delta.
	AddQuantity(ctx context.Context, userID, productID string, delta int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error)
	Delete(ctx context.Context, userID, productID string) error
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository instantiates repository.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

func (r *cartRepository) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const query = `
        SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
               p.id, p.name, p.description, p.price, p.category, p.image, p.stock, p.rating, p.created_at
        FROM cart_items c
        JOIN products p ON p.id = c.product_id
        WHERE c.user_id=$1
        ORDER BY c.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var p domain.Product
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.Image,
			&p.Stock,
			&p.Rating,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepository) Get(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	const query = `
        SELECT id, user_id, product_id, quantity, created_at, updated_at
        FROM cart_items WHERE user_id=$1 AND product_id=$2`
	return r.scanItem(ctx, query, userID, productID)
}

func (r *cartRepository) AddQuantity(ctx context.Context, userID, productID string, delta int) (*domain.CartItem, error) {
	const query = `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
        RETURNING id, user_id, product_id, quantity, created_at, updated_at`
	return r.scanItem(ctx, query, userID, productID, delta)
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	const query = `
        UPDATE cart_items SET quantity=$3, updated_at=NOW()
        WHERE user_id=$1 AND product_id=$2
        RETURNING id, user_id, product_id, quantity, created_at, updated_at`
	return r.scanItem(ctx, query, userID, productID, quantity)
}

func (r *cartRepository) Delete(ctx context.Context, userID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cartRepository) scanItem(ctx context.Context, query string, args ...any) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}
