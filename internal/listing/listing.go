// Package listing derives ordered, paginated views from a content snapshot.
package listing

import (
	"fmt"
	"sort"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/rating"
)

// Mode selects how the general list is derived.
type Mode string

const (
	ModeLatest        Mode = "latest"
	ModeHighestRated  Mode = "highestRated"
	ModeMustWatchOnly Mode = "mustWatchOnly"
)

// PageSize is the fixed number of items per page.
const PageSize = 15

// ParseMode accepts a mode name; an empty string means ModeLatest.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeLatest:
		return ModeLatest, nil
	case ModeHighestRated, ModeMustWatchOnly:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown list mode %q", s)
}

// Derive orders or filters items for mode. The input slice is not modified.
//
// ModeMustWatchOnly only filters: the survivors keep snapshot order.
func Derive(items []models.Content, mode Mode) []models.Content {
	switch mode {
	case ModeHighestRated:
		return byRating(items)
	case ModeMustWatchOnly:
		out := make([]models.Content, 0, len(items))
		for _, it := range items {
			if it.Category == models.CategoryMustWatch {
				out = append(out, it)
			}
		}
		return out
	default:
		out := append([]models.Content(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp > out[j].Timestamp
		})
		return out
	}
}

// Leaderboard returns the items released in year, best rated first.
// It ignores the general list mode.
func Leaderboard(items []models.Content, year int) []models.Content {
	out := make([]models.Content, 0)
	for _, it := range items {
		if it.Year == year {
			out = append(out, it)
		}
	}
	return byRating(out)
}

// byRating sorts by aggregate rating descending. Equal ratings put the newer
// submission first, then the smaller id, so repeated derivations agree.
func byRating(items []models.Content) []models.Content {
	type scored struct {
		item  models.Content
		score float64
	}
	tmp := make([]scored, len(items))
	for i, it := range items {
		tmp[i] = scored{item: it, score: rating.Aggregate(it)}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		a, b := tmp[i], tmp[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.item.Timestamp != b.item.Timestamp {
			return a.item.Timestamp > b.item.Timestamp
		}
		return a.item.ID < b.item.ID
	})
	out := make([]models.Content, len(tmp))
	for i, s := range tmp {
		out[i] = s.item
	}
	return out
}

// Page is one slice of a derived list.
type Page struct {
	Items      []models.Content
	Page       int
	TotalPages int
	Total      int
}

// TotalPages is ceil(count / PageSize), never less than 1.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}

// Paginate cuts page number page (1-based) out of items. Pages below 1 are
// treated as 1; pages past the end are empty.
func Paginate(items []models.Content, page int) Page {
	if page < 1 {
		page = 1
	}
	total := TotalPages(len(items))
	if page > total {
		return Page{Items: []models.Content{}, Page: page, TotalPages: total, Total: len(items)}
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page{
		Items:      items[start:end:end],
		Page:       page,
		TotalPages: total,
		Total:      len(items),
	}
}
