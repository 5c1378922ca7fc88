package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/portfolio-api/internal/domain"
)

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context, limit int) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (name, email, subject, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return translate(r.pool.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt))
}

func (r *contactRepository) List(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, name, email, subject, message, created_at
        FROM contact_messages ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ContactMessage{}
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
