package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/madson-lima/totalfilter-backend/internal/domain"
	"go.uber.org/zap"
)

// CarouselService owns the carousel ordering rules: items are appended at the
// end, deletions close the gap they leave, and a reorder must be a full
// permutation of the current items. The service holds no item state between
// calls; every operation works on a fresh snapshot from the repository.
type CarouselService struct {
	repo     domain.CarouselRepository
	verifier domain.AssetVerifier
	cache    *ListCache
	logger   *zap.Logger

	// mu serializes mutations. Two concurrent adds that both read count N
	// would both claim position N; the single-writer lock closes that race.
	mu sync.Mutex
}

func NewCarouselService(repo domain.CarouselRepository, verifier domain.AssetVerifier, cache *ListCache, logger *zap.Logger) *CarouselService {
	return &CarouselService{
		repo:     repo,
		verifier: verifier,
		cache:    cache,
		logger:   logger,
	}
}

// AddImage appends a new item at the end of the carousel. The referenced
// image must already exist in storage.
func (s *CarouselService) AddImage(ctx context.Context, imageURL string) (*domain.CarouselItem, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, domain.ValidationError("imageUrl is required")
	}

	ok, err := s.verifier.Exists(ctx, imageURL)
	if err != nil {
		return nil, domain.StoreError("could not verify image", err)
	}
	if !ok {
		return nil, domain.DependencyError("image not found in storage, upload it first")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	item := &domain.CarouselItem{
		ImageURL: imageURL,
		Position: count,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	return item, nil
}

// ListImages returns the carousel sorted by position. The read doubles as a
// consistency check: a gapped or duplicated position sequence is reported as
// a conflict instead of being served.
func (s *CarouselService) ListImages(ctx context.Context) ([]domain.CarouselItem, error) {
	if items, ok := s.cache.Get(); ok {
		return items, nil
	}

	// Capture the generation before the store read so a mutation committing
	// mid-read invalidates this fill instead of being masked by it.
	gen := s.cache.Generation()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkDense(items); err != nil {
		s.logger.Warn("carousel ordering inconsistent", zap.Error(err))
		return nil, err
	}
	s.cache.Set(items, gen)
	return items, nil
}

// DeleteImage removes an item. The repository closes the resulting position
// gap in the same transaction, so the sequence stays dense.
func (s *CarouselService) DeleteImage(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationError("id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// Reorder applies a complete new ordering. orderedIDs must contain every
// current item exactly once; a partial list or an unknown id rejects the
// whole request with no item mutated.
func (s *CarouselService) Reorder(ctx context.Context, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(items) {
		return domain.ValidationError(fmt.Sprintf("order must list all %d carousel items exactly once", len(items)))
	}

	current := make(map[string]bool, len(items))
	for _, it := range items {
		current[it.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return domain.ValidationError("duplicate id in order: " + id)
		}
		seen[id] = true
		if !current[id] {
			return domain.ValidationError("unknown carousel item id: " + id)
		}
	}

	if err := s.repo.UpdatePositions(ctx, orderedIDs); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// RepairOrdering renumbers the collection in its current sort order if the
// position sequence has gaps or duplicates. Run periodically by the
// scheduler; a no-op when the sequence is already dense.
func (s *CarouselService) RepairOrdering(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if checkDense(items) == nil {
		return nil
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	if err := s.repo.UpdatePositions(ctx, ids); err != nil {
		return err
	}
	s.cache.Invalidate()
	s.logger.Info("carousel ordering repaired", zap.Int("items", len(ids)))
	return nil
}

// checkDense verifies that items, already sorted by position, occupy exactly
// positions 0..N-1.
func checkDense(items []domain.CarouselItem) error {
	for i, it := range items {
		if it.Position != i {
			return domain.ConflictError(fmt.Sprintf("carousel ordering is inconsistent: item %s has position %d, expected %d", it.ID, it.Position, i))
		}
	}
	return nil
}
