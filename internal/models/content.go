package models

// ContentType distinguishes movies from series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Category is the submitter's verdict on a title.
type Category string

const (
	CategoryMustWatch    Category = "must-watch"
	CategoryGood         Category = "good"
	CategoryOneTimeWatch Category = "one-time-watch"
	CategoryBad          Category = "bad"
)

type Language string

const (
	LanguageHindi     Language = "hindi"
	LanguageTelugu    Language = "telugu"
	LanguageTamil     Language = "tamil"
	LanguageMalayalam Language = "malayalam"
	LanguageEnglish   Language = "english"
	LanguageForeign   Language = "foreign"
)

type AgeRating string

const (
	AgeRatingUnder18 AgeRating = "under-18"
	AgeRating18Plus  AgeRating = "18-plus"
)

const (
	MinRating = 1
	MaxRating = 10
	MinYear   = 1900
)

var ContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries}

var Categories = []Category{CategoryMustWatch, CategoryGood, CategoryOneTimeWatch, CategoryBad}

var Languages = []Language{
	LanguageHindi, LanguageTelugu, LanguageTamil,
	LanguageMalayalam, LanguageEnglish, LanguageForeign,
}

var AgeRatings = []AgeRating{AgeRatingUnder18, AgeRating18Plus}

func (t ContentType) Valid() bool { return oneOf(t, ContentTypes) }
func (c Category) Valid() bool    { return oneOf(c, Categories) }
func (l Language) Valid() bool    { return oneOf(l, Languages) }
func (a AgeRating) Valid() bool   { return oneOf(a, AgeRatings) }

// ValidRating reports whether v is inside the 1-10 rating scale.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// RatingEntry is one rating action by one user. Entries are only ever appended.
type RatingEntry struct {
	Value     int   `json:"value"`
	Timestamp int64 `json:"timestamp"`
}

// Content is a user-submitted movie or series.
//
// Rating is the submitter's own score and never changes after creation.
// RatingsByUser holds every rating action by other users, keyed by user id,
// in the order they were appended.
type Content struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	ContentType   ContentType              `json:"contentType"`
	Year          int                      `json:"year"`
	Rating        int                      `json:"rating"`
	Category      Category                 `json:"category"`
	Language      Language                 `json:"language"`
	AgeRating     AgeRating                `json:"ageRating"`
	Timestamp     int64                    `json:"timestamp"`
	OwnerID       string                   `json:"ownerId"`
	OwnerName     string                   `json:"ownerName"`
	RatingsByUser map[string][]RatingEntry `json:"ratingsByUser,omitempty"`

	// PosterURL is filled per read and never stored.
	PosterURL string `json:"posterUrl,omitempty"`
}

// Clone returns a deep copy so callers can't mutate shared rating history.
func (c Content) Clone() Content {
	out := c
	if c.RatingsByUser != nil {
		out.RatingsByUser = make(map[string][]RatingEntry, len(c.RatingsByUser))
		for user, entries := range c.RatingsByUser {
			out.RatingsByUser[user] = append([]RatingEntry(nil), entries...)
		}
	}
	return out
}

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
