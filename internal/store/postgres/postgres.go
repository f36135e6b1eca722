package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store"
)

// Store keeps content in Postgres through GORM. Rating entries live in their
// own table so every append is an insert.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// byID returns a GORM scope that filters contents by primary key.
func byID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func ratingsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

func (s *Store) Snapshot(ctx context.Context) ([]models.Content, error) {
	var rows []Content
	err := s.db.WithContext(ctx).
		Preload("Ratings", ratingsInOrder).
		Order(`"timestamp" ASC, id ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	out := make([]models.Content, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, store.ErrNotFound
	}

	var row Content
	err := s.db.WithContext(ctx).
		Scopes(byID(id)).
		Preload("Ratings", ratingsInOrder).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	c := row.toModel()
	return &c, nil
}

func (s *Store) Create(ctx context.Context, item *models.Content) error {
	row := fromModel(item)
	row.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	item.ID = row.ID
	return nil
}

func (s *Store) AppendRating(ctx context.Context, id, userID string, entry models.RatingEntry) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Content{}).Scopes(byID(id)).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up content: %w", err)
	}
	if count == 0 {
		return store.ErrNotFound
	}

	row := ContentRating{
		ContentID: id,
		UserID:    userID,
		Value:     entry.Value,
		Timestamp: entry.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append rating: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&ContentRating{}).Error; err != nil {
			return fmt.Errorf("failed to delete ratings: %w", err)
		}
		res := tx.Scopes(byID(id)).Delete(&Content{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete content: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}
