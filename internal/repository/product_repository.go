package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Limit    int
}

// ProductRepository encapsulates catalog persistence.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, price, category, image, stock, rating, created_at`

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if category := strings.TrimSpace(filter.Category); category != "" {
		args = append(args, category)
		clauses = append(clauses, fmt.Sprintf("LOWER(category)=LOWER($%d)", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC, id`,
		productColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id=$1`, productColumns)

	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
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
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1)`, productColumns)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	result := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
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
		result = append(result, p)
	}
	return result, rows.Err()
}
