package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/madson-lima/totalfilter-backend/internal/domain"
)

type CarouselRepository struct {
	db *sql.DB
}

func NewCarouselRepository(db *sql.DB) *CarouselRepository {
	return &CarouselRepository{db: db}
}

func (r *CarouselRepository) GetAll(ctx context.Context) ([]domain.CarouselItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, image_url, position, created_at
		FROM carousel_items
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, domain.StoreError("could not read carousel items", err)
	}
	defer rows.Close()

	var items []domain.CarouselItem
	for rows.Next() {
		var it domain.CarouselItem
		if err := rows.Scan(&it.ID, &it.ImageURL, &it.Position, &it.CreatedAt); err != nil {
			return nil, domain.StoreError("could not read carousel items", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("could not read carousel items", err)
	}
	return items, nil
}

func (r *CarouselRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM carousel_items").Scan(&count)
	if err != nil {
		return 0, domain.StoreError("could not count carousel items", err)
	}
	return count, nil
}

func (r *CarouselRepository) Create(ctx context.Context, item *domain.CarouselItem) error {
	item.ID = uuid.NewString()
	query := `
		INSERT INTO carousel_items (id, image_url, position)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, item.ID, item.ImageURL, item.Position).Scan(&item.CreatedAt)
	if err != nil {
		return domain.StoreError("could not create carousel item", err)
	}
	return nil
}

// Delete removes the item and decrements the position of everything behind
// it, inside one transaction so a failure never leaves a gap.
func (r *CarouselRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StoreError("could not delete carousel item", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, "SELECT position FROM carousel_items WHERE id = $1", id).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("carousel item not found")
	}
	if err != nil {
		return domain.StoreError("could not delete carousel item", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM carousel_items WHERE id = $1", id); err != nil {
		return domain.StoreError("could not delete carousel item", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE carousel_items SET position = position - 1 WHERE position > $1", position); err != nil {
		return domain.StoreError("could not renumber carousel items", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.StoreError("could not delete carousel item", err)
	}
	return nil
}

// UpdatePositions writes position i for orderedIDs[i] as one transaction.
// Each individual write is idempotent, so rerunning after a failed commit
// converges to the same final order.
func (r *CarouselRepository) UpdatePositions(ctx context.Context, orderedIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StoreError("could not reorder carousel items", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "UPDATE carousel_items SET position = $1 WHERE id = $2")
	if err != nil {
		return domain.StoreError("could not reorder carousel items", err)
	}
	defer stmt.Close()

	for i, id := range orderedIDs {
		result, err := stmt.ExecContext(ctx, i, id)
		if err != nil {
			return domain.StoreError("could not reorder carousel items", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return domain.NotFoundError("carousel item not found: " + id)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.StoreError("could not reorder carousel items", err)
	}
	return nil
}
