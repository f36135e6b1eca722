// Package rating computes the display rating of a content item.
//
// The display rating is the mean of the submitter's base rating and the most
// recent rating of every other user, rounded half away from zero to one
// decimal place.
package rating

import (
	"math"
	"strconv"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

// Aggregate returns the display rating of item rounded to one decimal.
//
// For each user only the entry with the greatest timestamp counts. When two
// entries share that timestamp the one appended later wins. A user whose
// latest entry is outside the rating scale contributes nothing.
func Aggregate(item models.Content) float64 {
	sum := item.Rating
	n := 1
	for _, entries := range item.RatingsByUser {
		latest, ok := Latest(entries)
		if !ok || !models.ValidRating(latest.Value) {
			continue
		}
		sum += latest.Value
		n++
	}
	// Scale before dividing so halves stay exact in binary.
	return math.Round(float64(sum*10)/float64(n)) / 10
}

// Latest picks the most recent entry of one user's history.
func Latest(entries []models.RatingEntry) (models.RatingEntry, bool) {
	if len(entries) == 0 {
		return models.RatingEntry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Timestamp >= latest.Timestamp {
			latest = e
		}
	}
	return latest, true
}

// Format renders a rounded rating with exactly one fractional digit.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Display is Format(Aggregate(item)).
func Display(item models.Content) string {
	return Format(Aggregate(item))
}
