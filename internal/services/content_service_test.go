package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/policy"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/rating"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store/memory"
)

type fakePosters struct {
	mu    sync.Mutex
	calls int
	miss  map[string]bool
}

func (f *fakePosters) Search(_ context.Context, title string, _ models.ContentType) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.miss[title] {
		return "", false
	}
	return "https://img/" + title + ".jpg", true
}

type countingNotifier struct{ n atomic.Int32 }

func (c *countingNotifier) Changed() { c.n.Add(1) }

var (
	alice = &identity.Identity{ID: "alice-id", Username: "alice"}
	bob   = &identity.Identity{ID: "bob-id", Username: "bob"}
)

func newTestService(t *testing.T, pol policy.Policy) (*ContentService, *memory.Store, *fakePosters, *countingNotifier) {
	t.Helper()
	st := memory.New()
	posters := &fakePosters{miss: map[string]bool{}}
	changes := &countingNotifier{}
	svc := NewContentService(st, posters, changes, pol)
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, st, posters, changes
}

func validRequest(title string) *dto.SubmitContentRequest {
	return &dto.SubmitContentRequest{
		Title:       title,
		ContentType: "movie",
		Year:        2023,
		Rating:      8,
		Category:    "must-watch",
		Language:    "telugu",
		AgeRating:   "under-18",
	}
}

func TestSubmit(t *testing.T) {
	svc, st, _, changes := newTestService(t, policy.Policy{})
	ctx := context.Background()

	item, err := svc.Submit(ctx, alice, validRequest("  RRR  "))
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "RRR", item.Title)
	assert.Equal(t, alice.ID, item.OwnerID)
	assert.Equal(t, "alice", item.OwnerName)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 1, 0, time.UTC).UnixMilli(), item.Timestamp)
	assert.EqualValues(t, 1, changes.n.Load())

	stored, err := st.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Rating)
}

func TestSubmitRequiresIdentity(t *testing.T) {
	svc, _, _, changes := newTestService(t, policy.Policy{})
	_, err := svc.Submit(context.Background(), nil, validRequest("RRR"))
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.EqualValues(t, 0, changes.n.Load())
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t, policy.Policy{})
	tests := []struct {
		name   string
		mutate func(r *dto.SubmitContentRequest)
	}{
		{"empty title", func(r *dto.SubmitContentRequest) { r.Title = "  " }},
		{"bad type", func(r *dto.SubmitContentRequest) { r.ContentType = "podcast" }},
		{"year too old", func(r *dto.SubmitContentRequest) { r.Year = 1899 }},
		{"year in future", func(r *dto.SubmitContentRequest) { r.Year = 2025 }},
		{"rating zero", func(r *dto.SubmitContentRequest) { r.Rating = 0 }},
		{"rating eleven", func(r *dto.SubmitContentRequest) { r.Rating = 11 }},
		{"bad category", func(r *dto.SubmitContentRequest) { r.Category = "great" }},
		{"bad language", func(r *dto.SubmitContentRequest) { r.Language = "klingon" }},
		{"bad age rating", func(r *dto.SubmitContentRequest) { r.AgeRating = "pg-13" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("RRR")
			tt.mutate(req)
			_, err := svc.Submit(context.Background(), alice, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRate(t *testing.T) {
	svc, st, _, changes := newTestService(t, policy.Policy{})
	ctx := context.Background()
	item, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	require.NoError(t, svc.Rate(ctx, bob, item.ID, 4))
	require.NoError(t, svc.Rate(ctx, bob, item.ID, 10))
	assert.EqualValues(t, 3, changes.n.Load())

	stored, err := st.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, stored.RatingsByUser[bob.ID], 2, "history is append only")
	// (8 + 10) / 2
	assert.Equal(t, "9.0", rating.Display(*stored))
}

func TestRateOwnItemIsForbidden(t *testing.T) {
	svc, st, _, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()
	item, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	err = svc.Rate(ctx, alice, item.ID, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := st.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RatingsByUser)
}

func TestRateErrors(t *testing.T) {
	svc, _, _, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()
	item, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Rate(ctx, nil, item.ID, 5), ErrUnauthenticated)
	assert.ErrorIs(t, svc.Rate(ctx, bob, item.ID, 0), ErrInvalidInput)
	assert.ErrorIs(t, svc.Rate(ctx, bob, "missing", 5), ErrNotFound)
}

func TestDeleteAnyClaimedIdentityByDefault(t *testing.T) {
	svc, st, _, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()
	item, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, nil, item.ID), ErrUnauthenticated)
	require.NoError(t, svc.Delete(ctx, bob, item.ID))

	_, err = st.Get(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, item.ID), ErrNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService(t, policy.Policy{OwnerOnlyDelete: true})
	ctx := context.Background()
	item, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, item.ID), ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, alice, item.ID))
}

func TestListEnrichesPostersPerPage(t *testing.T) {
	svc, _, posters, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, err := svc.Submit(ctx, alice, validRequest(fmt.Sprintf("T%02d", i)))
		require.NoError(t, err)
	}
	posters.miss["T19"] = true

	p, err := svc.List(ctx, listing.ModeLatest, 1)
	require.NoError(t, err)
	require.Len(t, p.Items, listing.PageSize)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, "T19", p.Items[0].Title)
	assert.Empty(t, p.Items[0].PosterURL)
	assert.Equal(t, "https://img/T18.jpg", p.Items[1].PosterURL)
	assert.Equal(t, listing.PageSize, posters.calls)

	p, err = svc.List(ctx, listing.ModeLatest, 2)
	require.NoError(t, err)
	assert.Len(t, p.Items, 5)
}

func TestLeaderboard(t *testing.T) {
	svc, _, _, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()

	low := validRequest("Low")
	low.Rating = 3
	high := validRequest("High")
	high.Rating = 9
	old := validRequest("Old")
	old.Year = 1999
	for _, r := range []*dto.SubmitContentRequest{low, high, old} {
		_, err := svc.Submit(ctx, alice, r)
		require.NoError(t, err)
	}

	p, err := svc.Leaderboard(ctx, 2023, 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "High", p.Items[0].Title)
	assert.Equal(t, "Low", p.Items[1].Title)

	_, err = svc.Leaderboard(ctx, 1800, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRenderView(t *testing.T) {
	svc, st, _, _ := newTestService(t, policy.Policy{})
	ctx := context.Background()
	_, err := svc.Submit(ctx, alice, validRequest("RRR"))
	require.NoError(t, err)

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)

	v := listing.NewView()
	v.SetYear(2023)
	r := svc.Render(ctx, v, snap)
	require.Len(t, r.List.Items, 1)
	assert.Equal(t, "https://img/RRR.jpg", r.List.Items[0].PosterURL)
	require.NotNil(t, r.Leaderboard)
	assert.Equal(t, "https://img/RRR.jpg", r.Leaderboard.Items[0].PosterURL)
	assert.Empty(t, snap[0].PosterURL, "snapshot must not be mutated")
}

type brokenStore struct{ store.Store }

var errDown = errors.New("connection refused")

func (brokenStore) Snapshot(context.Context) ([]models.Content, error) { return nil, errDown }
func (brokenStore) Get(context.Context, string) (*models.Content, error) {
	return nil, errDown
}
func (brokenStore) Create(context.Context, *models.Content) error { return errDown }

func TestStoreFailuresAreExternalUnavailable(t *testing.T) {
	svc := NewContentService(brokenStore{}, nil, nil, policy.Policy{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, alice, validRequest("RRR"))
	assert.ErrorIs(t, err, ErrExternalUnavailable)
	assert.ErrorIs(t, err, errDown)

	_, err = svc.List(ctx, listing.ModeLatest, 1)
	assert.ErrorIs(t, err, ErrExternalUnavailable)

	assert.ErrorIs(t, svc.Rate(ctx, bob, "x", 5), ErrExternalUnavailable)
	assert.ErrorIs(t, svc.Delete(ctx, bob, "x"), ErrExternalUnavailable)
}
