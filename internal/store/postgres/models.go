package postgres

import (
	"time"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

// Content is the contents table row.
type Content struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	ContentType string    `gorm:"size:20;not null;index"`
	Year        int       `gorm:"not null;index"`
	Rating      int       `gorm:"not null"`
	Category    string    `gorm:"size:30;not null;index"`
	Language    string    `gorm:"size:20;not null"`
	AgeRating   string    `gorm:"size:20;not null"`
	Timestamp   int64     `gorm:"not null;index"`
	OwnerID     string    `gorm:"size:64;not null;index"`
	OwnerName   string    `gorm:"size:100;not null"`
	CreatedAt   time.Time
	Ratings     []ContentRating `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// ContentRating is one appended rating entry. Seq orders a user's history.
type ContentRating struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement"`
	ContentID string `gorm:"type:uuid;not null;index"`
	UserID    string `gorm:"size:64;not null;index"`
	Value     int    `gorm:"not null"`
	Timestamp int64  `gorm:"not null"`
	CreatedAt time.Time
}

// Models lists the row types for AutoMigrate.
func Models() []interface{} {
	return []interface{}{&Content{}, &ContentRating{}}
}

func fromModel(c *models.Content) Content {
	return Content{
		ID:          c.ID,
		Title:       c.Title,
		ContentType: string(c.ContentType),
		Year:        c.Year,
		Rating:      c.Rating,
		Category:    string(c.Category),
		Language:    string(c.Language),
		AgeRating:   string(c.AgeRating),
		Timestamp:   c.Timestamp,
		OwnerID:     c.OwnerID,
		OwnerName:   c.OwnerName,
	}
}

func (r Content) toModel() models.Content {
	c := models.Content{
		ID:          r.ID,
		Title:       r.Title,
		ContentType: models.ContentType(r.ContentType),
		Year:        r.Year,
		Rating:      r.Rating,
		Category:    models.Category(r.Category),
		Language:    models.Language(r.Language),
		AgeRating:   models.AgeRating(r.AgeRating),
		Timestamp:   r.Timestamp,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerName,
	}
	if len(r.Ratings) > 0 {
		c.RatingsByUser = make(map[string][]models.RatingEntry)
		for _, rr := range r.Ratings {
			c.RatingsByUser[rr.UserID] = append(c.RatingsByUser[rr.UserID], models.RatingEntry{
				Value:     rr.Value,
				Timestamp: rr.Timestamp,
			})
		}
	}
	return c
}
