package listing

import "github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"

// View is the list state of one client session: the general list mode and
// page, plus an optional leaderboard year with its own page.
//
// Changing the mode or the year sends the matching page back to 1.
type View struct {
	mode            Mode
	page            int
	year            int
	leaderboardPage int
}

func NewView() *View {
	return &View{mode: ModeLatest, page: 1, leaderboardPage: 1}
}

func (v *View) Mode() Mode           { return v.mode }
func (v *View) Page() int            { return v.page }
func (v *View) Year() int            { return v.year }
func (v *View) LeaderboardPage() int { return v.leaderboardPage }

func (v *View) SetMode(m Mode) {
	if m == v.mode {
		return
	}
	v.mode = m
	v.page = 1
}

func (v *View) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	v.page = p
}

// SetYear selects the leaderboard year. Zero hides the leaderboard.
func (v *View) SetYear(y int) {
	if y == v.year {
		return
	}
	v.year = y
	v.leaderboardPage = 1
}

func (v *View) SetLeaderboardPage(p int) {
	if p < 1 {
		p = 1
	}
	v.leaderboardPage = p
}

// Rendered is a View applied to one snapshot.
type Rendered struct {
	Mode        Mode
	List        Page
	Year        int
	Leaderboard *Page
}

// Render derives both lists from a full snapshot.
func (v *View) Render(items []models.Content) Rendered {
	r := Rendered{
		Mode: v.mode,
		List: Paginate(Derive(items, v.mode), v.page),
		Year: v.year,
	}
	if v.year != 0 {
		lb := Paginate(Leaderboard(items, v.year), v.leaderboardPage)
		r.Leaderboard = &lb
	}
	return r
}
