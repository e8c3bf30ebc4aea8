package domain

import (
	"context"
	"time"
)

const (
	ContactStatusPending  = "pending"
	ContactStatusResolved = "resolved"
)

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	GetAll(ctx context.Context) ([]ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
