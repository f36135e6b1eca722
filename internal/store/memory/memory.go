package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store"
)

// Store keeps content in process memory.
type Store struct {
	sync.RWMutex
	order []string
	data  map[string]*models.Content
}

// New creates an empty memory store.
func New() *Store {
	return &Store{data: map[string]*models.Content{}}
}

// Snapshot returns copies of all items in creation order.
func (s *Store) Snapshot(_ context.Context) ([]models.Content, error) {
	s.RLock()
	defer s.RUnlock()

	out := make([]models.Content, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id].Clone())
	}
	return out, nil
}

// Get retrieves one item by id.
func (s *Store) Get(_ context.Context, id string) (*models.Content, error) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.data[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := c.Clone()
	return &cp, nil
}

// Create stores item under a new id.
func (s *Store) Create(_ context.Context, item *models.Content) error {
	s.Lock()
	defer s.Unlock()

	item.ID = uuid.NewString()
	cp := item.Clone()
	cp.PosterURL = ""
	s.data[item.ID] = &cp
	s.order = append(s.order, item.ID)
	return nil
}

// AppendRating adds one entry to a user's rating history.
func (s *Store) AppendRating(_ context.Context, id, userID string, entry models.RatingEntry) error {
	s.Lock()
	defer s.Unlock()

	c, ok := s.data[id]
	if !ok {
		return store.ErrNotFound
	}
	if c.RatingsByUser == nil {
		c.RatingsByUser = map[string][]models.RatingEntry{}
	}
	c.RatingsByUser[userID] = append(c.RatingsByUser[userID], entry)
	return nil
}

// Delete removes an item and its rating history.
func (s *Store) Delete(_ context.Context, id string) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.data[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.data, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
