// Package store defines the content store boundary.
//
// A store hands out full snapshots of the collection and accepts three kinds
// of writes: create, append a rating entry, delete. It does not validate
// field shapes or ranges.
package store

import (
	"context"
	"errors"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

var ErrNotFound = errors.New("content not found")

type Store interface {
	// Snapshot returns every item in creation order.
	Snapshot(ctx context.Context) ([]models.Content, error)
	Get(ctx context.Context, id string) (*models.Content, error)
	// Create assigns item.ID and persists the item.
	Create(ctx context.Context, item *models.Content) error
	// AppendRating adds entry to the end of userID's history on item id.
	AppendRating(ctx context.Context, id, userID string, entry models.RatingEntry) error
	Delete(ctx context.Context, id string) error
}
