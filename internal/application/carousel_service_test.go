package application

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/madson-lima/totalfilter-backend/internal/domain"
)

// fakeCarouselRepo is an in-memory stand-in with the same contract as the
// Postgres repository: Delete closes the position gap and UpdatePositions is
// all-or-nothing.
type fakeCarouselRepo struct {
	mu    sync.Mutex
	items map[string]domain.CarouselItem
}

func newFakeCarouselRepo() *fakeCarouselRepo {
	return &fakeCarouselRepo{items: make(map[string]domain.CarouselItem)}
}

func (r *fakeCarouselRepo) GetAll(ctx context.Context) ([]domain.CarouselItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.CarouselItem, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *fakeCarouselRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *fakeCarouselRepo) Create(ctx context.Context, item *domain.CarouselItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

func (r *fakeCarouselRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, ok := r.items[id]
	if !ok {
		return domain.NotFoundError("carousel item not found")
	}
	delete(r.items, id)
	for key, it := range r.items {
		if it.Position > removed.Position {
			it.Position--
			r.items[key] = it
		}
	}
	return nil
}

func (r *fakeCarouselRepo) UpdatePositions(ctx context.Context, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range orderedIDs {
		if _, ok := r.items[id]; !ok {
			return domain.NotFoundError("carousel item not found: " + id)
		}
	}
	for i, id := range orderedIDs {
		it := r.items[id]
		it.Position = i
		r.items[id] = it
	}
	return nil
}

// put inserts an item with an explicit position, bypassing the service. Used
// to stage corrupted sequences.
func (r *fakeCarouselRepo) put(url string, position int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.items[id] = domain.CarouselItem{ID: id, ImageURL: url, Position: position, CreatedAt: time.Now()}
	return id
}

type fakeVerifier struct {
	missing map[string]bool
}

func (v *fakeVerifier) Exists(ctx context.Context, imageURL string) (bool, error) {
	return !v.missing[imageURL], nil
}

func newTestService(repo *fakeCarouselRepo, missing ...string) *CarouselService {
	verifier := &fakeVerifier{missing: make(map[string]bool)}
	for _, url := range missing {
		verifier.missing[url] = true
	}
	return NewCarouselService(repo, verifier, NewListCache(time.Minute), zap.NewNop())
}

func requireDense(t *testing.T, repo *fakeCarouselRepo) {
	t.Helper()

	items, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	for i, it := range items {
		require.Equal(t, i, it.Position, "positions must be exactly 0..N-1")
	}
}

func TestAddImage_AppendsAtEnd(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.AddImage(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.NotEmpty(t, first.ID)

	second, err := svc.AddImage(ctx, "https://cdn.example.com/b.png")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.NotEqual(t, first.ID, second.ID)

	requireDense(t, repo)
}

func TestAddImage_Validation(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo, "https://cdn.example.com/missing.png")
	ctx := context.Background()

	_, err := svc.AddImage(ctx, "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.AddImage(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.AddImage(ctx, "https://cdn.example.com/missing.png")
	require.Error(t, err)
	assert.Equal(t, domain.KindDependency, domain.KindOf(err))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "rejected adds must not create items")
}

func TestDeleteImage_ClosesGap(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	x, err := svc.AddImage(ctx, "x.png")
	require.NoError(t, err)
	y, err := svc.AddImage(ctx, "y.png")
	require.NoError(t, err)
	z, err := svc.AddImage(ctx, "z.png")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(ctx, y.ID))

	items, err := svc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Ids are untouched, only positions shift.
	assert.Equal(t, x.ID, items[0].ID)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, z.ID, items[1].ID)
	assert.Equal(t, 1, items[1].Position)
}

func TestDeleteImage_NotFound(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)

	err := svc.DeleteImage(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestReorder_AppliesNewOrder(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	x, _ := svc.AddImage(ctx, "x.png")
	y, _ := svc.AddImage(ctx, "y.png")
	z, _ := svc.AddImage(ctx, "z.png")

	require.NoError(t, svc.Reorder(ctx, []string{z.ID, x.ID, y.ID}))

	items, err := svc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{z.ID, x.ID, y.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	requireDense(t, repo)
}

func TestReorder_RejectsNonPermutations(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	x, _ := svc.AddImage(ctx, "x.png")
	y, _ := svc.AddImage(ctx, "y.png")
	z, _ := svc.AddImage(ctx, "z.png")

	tests := []struct {
		name  string
		order []string
	}{
		{"empty list", nil},
		{"partial list", []string{x.ID, y.ID}},
		{"duplicate id", []string{x.ID, x.ID, y.ID}},
		{"unknown id", []string{x.ID, y.ID, uuid.NewString()}},
		{"extra id", []string{x.ID, y.ID, z.ID, uuid.NewString()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Reorder(ctx, tt.order)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))

			// Nothing may have moved.
			items, err := repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, []string{x.ID, y.ID, z.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
		})
	}
}

func TestReorder_Idempotent(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	a, _ := svc.AddImage(ctx, "a.png")
	b, _ := svc.AddImage(ctx, "b.png")
	c, _ := svc.AddImage(ctx, "c.png")

	order := []string{b.ID, c.ID, a.ID}
	require.NoError(t, svc.Reorder(ctx, order))
	once, err := repo.GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, order))
	twice, err := repo.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestDensityAfterMixedOperations(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	var ids []string
	for _, url := range []string{"a.png", "b.png", "c.png", "d.png", "e.png"} {
		item, err := svc.AddImage(ctx, url)
		require.NoError(t, err)
		ids = append(ids, item.ID)
		requireDense(t, repo)
	}

	require.NoError(t, svc.DeleteImage(ctx, ids[2]))
	requireDense(t, repo)

	require.NoError(t, svc.Reorder(ctx, []string{ids[4], ids[0], ids[3], ids[1]}))
	requireDense(t, repo)

	require.NoError(t, svc.DeleteImage(ctx, ids[4]))
	requireDense(t, repo)

	item, err := svc.AddImage(ctx, "f.png")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Position)
	requireDense(t, repo)
}

func TestConcurrentAdds_KeepPositionsDense(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddImage(ctx, "img.png")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, n)
	requireDense(t, repo)
}

// slowListRepo takes its first GetAll snapshot, then blocks until released.
// Lets a test commit a mutation between a reader's store read and its cache
// fill.
type slowListRepo struct {
	*fakeCarouselRepo
	entered chan struct{}
	release chan struct{}
	first   sync.Once
}

func (r *slowListRepo) GetAll(ctx context.Context) ([]domain.CarouselItem, error) {
	items, err := r.fakeCarouselRepo.GetAll(ctx)
	r.first.Do(func() {
		close(r.entered)
		<-r.release
	})
	return items, err
}

func TestListImages_SeesMutationCommittedDuringRead(t *testing.T) {
	repo := &slowListRepo{
		fakeCarouselRepo: newFakeCarouselRepo(),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	verifier := &fakeVerifier{missing: make(map[string]bool)}
	svc := NewCarouselService(repo, verifier, NewListCache(time.Minute), zap.NewNop())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.ListImages(ctx)
		assert.NoError(t, err)
	}()

	// The reader holds its pre-mutation snapshot; complete an add before
	// letting it fill the cache.
	<-repo.entered
	_, err := svc.AddImage(ctx, "new.png")
	require.NoError(t, err)
	close(repo.release)
	<-done

	items, err := svc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1, "listing after a completed add must include the new item")
	assert.Equal(t, "new.png", items[0].ImageURL)
}

func TestReorder_EmptyCollectionAcceptsEmptyOrder(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// The empty list is the permutation of zero items.
	require.NoError(t, svc.Reorder(ctx, nil))
	require.NoError(t, svc.Reorder(ctx, []string{}))

	items, err := svc.ListImages(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListImages_ReportsCorruptedOrdering(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)

	repo.put("a.png", 0)
	repo.put("b.png", 2) // gap at 1

	_, err := svc.ListImages(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestRepairOrdering_RenumbersGaps(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	a := repo.put("a.png", 0)
	b := repo.put("b.png", 3)
	c := repo.put("c.png", 7)

	require.NoError(t, svc.RepairOrdering(ctx))

	items, err := svc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{a, b, c}, []string{items[0].ID, items[1].ID, items[2].ID})
	requireDense(t, repo)
}

func TestRepairOrdering_NoopWhenDense(t *testing.T) {
	repo := newFakeCarouselRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	svc.AddImage(ctx, "a.png")
	svc.AddImage(ctx, "b.png")
	before, err := repo.GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.RepairOrdering(ctx))

	after, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
