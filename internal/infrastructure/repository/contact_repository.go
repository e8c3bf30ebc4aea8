package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/madson-lima/totalfilter-backend/internal/domain"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	msg.ID = uuid.NewString()
	query := `
		INSERT INTO contact_messages (id, name, email, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.Name, msg.Email, msg.Message, msg.Status).Scan(&msg.CreatedAt)
	if err != nil {
		return domain.StoreError("could not create contact message", err)
	}
	return nil
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, message, status, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, domain.StoreError("could not read contact messages", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, domain.StoreError("could not read contact messages", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("could not read contact messages", err)
	}
	return messages, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE contact_messages SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return domain.StoreError("could not update contact message", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError("contact message not found")
	}
	return nil
}
