package dto

import "github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"

// Live intent actions sent by websocket clients.
const (
	IntentMode            = "mode"
	IntentPage            = "page"
	IntentLeaderboard     = "leaderboard"
	IntentLeaderboardPage = "leaderboardPage"
)

type LiveIntent struct {
	Action string `json:"action"`
	Mode   string `json:"mode,omitempty"`
	Page   int    `json:"page,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// LiveFrame is pushed to websocket clients. Type is "snapshot" or "error".
type LiveFrame struct {
	Type        string        `json:"type"`
	List        *PageResponse `json:"list,omitempty"`
	Leaderboard *PageResponse `json:"leaderboard,omitempty"`
	Message     string        `json:"message,omitempty"`
}

func NewSnapshotFrame(r listing.Rendered) LiveFrame {
	list := NewPageResponse(r.List)
	list.Mode = string(r.Mode)
	frame := LiveFrame{Type: "snapshot", List: &list}
	if r.Leaderboard != nil {
		lb := NewPageResponse(*r.Leaderboard)
		lb.Year = r.Year
		frame.Leaderboard = &lb
	}
	return frame
}

func NewErrorFrame(message string) LiveFrame {
	return LiveFrame{Type: "error", Message: message}
}
