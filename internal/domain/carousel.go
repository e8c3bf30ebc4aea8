package domain

import (
	"context"
	"time"
)

// CarouselItem is one positioned image of the homepage carousel. Position is
// a zero-based rank: after every completed mutation the positions of the N
// stored items are exactly 0..N-1, with no gaps and no duplicates.
type CarouselItem struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type CarouselRepository interface {
	GetAll(ctx context.Context) ([]CarouselItem, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, item *CarouselItem) error
	// Delete removes the item and closes the position gap it leaves behind,
	// both inside one transaction.
	Delete(ctx context.Context, id string) error
	// UpdatePositions assigns position i to orderedIDs[i] for every i, as a
	// single transactional batch.
	UpdatePositions(ctx context.Context, orderedIDs []string) error
}

// AssetVerifier confirms that an image reference points to a stored object.
// Items referencing assets that fail this check are never admitted.
type AssetVerifier interface {
	Exists(ctx context.Context, imageURL string) (bool, error)
}
