package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/policy"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store"
)

var (
	ErrUnauthenticated     = errors.New("claim a username first")
	ErrForbidden           = errors.New("action not allowed")
	ErrExternalUnavailable = errors.New("content store unavailable")
	ErrNotFound            = errors.New("content not found")
	ErrInvalidInput        = errors.New("invalid input")
)

const maxTitleLength = 200

// posterFetchLimit bounds concurrent poster lookups per page.
const posterFetchLimit = 5

type posterLookup interface {
	Search(ctx context.Context, title string, contentType models.ContentType) (string, bool)
}

type changeNotifier interface {
	Changed()
}

// ContentService is the action boundary for submitting, rating, deleting and
// listing content. Every write is fire-and-forget towards subscribers: the
// change notifier is told after the store accepts it.
type ContentService struct {
	store   store.Store
	posters posterLookup
	changes changeNotifier
	policy  policy.Policy
	now     func() time.Time
}

func NewContentService(st store.Store, posters posterLookup, changes changeNotifier, pol policy.Policy) *ContentService {
	return &ContentService{
		store:   st,
		posters: posters,
		changes: changes,
		policy:  pol,
		now:     time.Now,
	}
}

func (s *ContentService) Submit(ctx context.Context, actor *identity.Identity, req *dto.SubmitContentRequest) (*models.Content, error) {
	if !s.policy.CanSubmit(actor) {
		return nil, ErrUnauthenticated
	}

	item, err := s.validateSubmission(req)
	if err != nil {
		return nil, err
	}
	item.Timestamp = s.now().UnixMilli()
	item.OwnerID = actor.ID
	item.OwnerName = actor.Username

	if err := s.store.Create(ctx, item); err != nil {
		return nil, s.storeError("submit", err)
	}
	s.notify()

	slog.Info("content submitted", "action", "submit", "content_id", item.ID, "user_id", actor.ID, "title", item.Title)
	return item, nil
}

func (s *ContentService) validateSubmission(req *dto.SubmitContentRequest) (*models.Content, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTitleLength)
	}

	item := &models.Content{
		Title:       title,
		ContentType: models.ContentType(req.ContentType),
		Year:        req.Year,
		Rating:      req.Rating,
		Category:    models.Category(req.Category),
		Language:    models.Language(req.Language),
		AgeRating:   models.AgeRating(req.AgeRating),
	}
	if !item.ContentType.Valid() {
		return nil, fmt.Errorf("%w: content type must be movie or series", ErrInvalidInput)
	}
	if err := s.ValidateYear(item.Year); err != nil {
		return nil, err
	}
	if !models.ValidRating(item.Rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinRating, models.MaxRating)
	}
	if !item.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	if !item.Language.Valid() {
		return nil, fmt.Errorf("%w: unknown language %q", ErrInvalidInput, req.Language)
	}
	if !item.AgeRating.Valid() {
		return nil, fmt.Errorf("%w: unknown age rating %q", ErrInvalidInput, req.AgeRating)
	}
	return item, nil
}

// ValidateYear accepts release years from 1900 through the current year.
func (s *ContentService) ValidateYear(year int) error {
	current := s.now().Year()
	if year < models.MinYear || year > current {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, models.MinYear, current)
	}
	return nil
}

// Rate appends a rating entry under the actor's id.
func (s *ContentService) Rate(ctx context.Context, actor *identity.Identity, id string, value int) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !models.ValidRating(value) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinRating, models.MaxRating)
	}

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return s.storeError("rate", err)
	}
	if !s.policy.CanRate(actor, *item) {
		return fmt.Errorf("%w: you cannot rate your own submission", ErrForbidden)
	}

	entry := models.RatingEntry{Value: value, Timestamp: s.now().UnixMilli()}
	if err := s.store.AppendRating(ctx, id, actor.ID, entry); err != nil {
		return s.storeError("rate", err)
	}
	s.notify()

	slog.Info("content rated", "action", "rate", "content_id", id, "user_id", actor.ID, "value", value)
	return nil
}

func (s *ContentService) Delete(ctx context.Context, actor *identity.Identity, id string) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return s.storeError("delete", err)
	}
	if !s.policy.CanDelete(actor, *item) {
		return fmt.Errorf("%w: only the submitter can delete this", ErrForbidden)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeError("delete", err)
	}
	s.notify()

	slog.Info("content deleted", "action", "delete", "content_id", id, "user_id", actor.ID, "owner_id", item.OwnerID)
	return nil
}

// Get returns one item with its poster filled in when available.
func (s *ContentService) Get(ctx context.Context, id string) (*models.Content, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeError("get", err)
	}
	items := []models.Content{*item}
	s.enrich(ctx, items)
	return &items[0], nil
}

// List derives the general list for mode and returns one page of it.
func (s *ContentService) List(ctx context.Context, mode listing.Mode, page int) (listing.Page, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return listing.Page{}, s.storeError("list", err)
	}
	p := listing.Paginate(listing.Derive(snap, mode), page)
	s.enrich(ctx, p.Items)
	return p, nil
}

// Leaderboard returns one page of the best rated items released in year.
func (s *ContentService) Leaderboard(ctx context.Context, year, page int) (listing.Page, error) {
	if err := s.ValidateYear(year); err != nil {
		return listing.Page{}, err
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return listing.Page{}, s.storeError("leaderboard", err)
	}
	p := listing.Paginate(listing.Leaderboard(snap, year), page)
	s.enrich(ctx, p.Items)
	return p, nil
}

// Render applies a session view to a pushed snapshot.
func (s *ContentService) Render(ctx context.Context, view *listing.View, snapshot []models.Content) listing.Rendered {
	r := view.Render(snapshot)
	s.enrich(ctx, r.List.Items)
	if r.Leaderboard != nil {
		s.enrich(ctx, r.Leaderboard.Items)
	}
	return r
}

// enrich fills PosterURL in place. Failed lookups leave it empty.
func (s *ContentService) enrich(ctx context.Context, items []models.Content) {
	if s.posters == nil || len(items) == 0 {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(posterFetchLimit)
	for i := range items {
		g.Go(func() error {
			if poster, ok := s.posters.Search(gctx, items[i].Title, items[i].ContentType); ok {
				items[i].PosterURL = poster
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *ContentService) notify() {
	if s.changes != nil {
		s.changes.Changed()
	}
}

func (s *ContentService) storeError(action string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	slog.Error("content store call failed", "action", action, "error", err)
	return fmt.Errorf("%w: %w", ErrExternalUnavailable, err)
}
