package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/live"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/services"
)

type LiveHandler struct {
	hub     *live.Hub
	service *services.ContentService
}

func NewLiveHandler(hub *live.Hub, service *services.ContentService) *LiveHandler {
	return &LiveHandler{hub: hub, service: service}
}

// Upgrade rejects plain HTTP requests to the live endpoint.
func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream returns the websocket handler. Each connection owns a view; the
// view is re-rendered against the latest snapshot whenever the store changes
// or the client sends an intent.
func (h *LiveHandler) Stream() fiber.Handler {
	return websocket.New(h.serve)
}

type intentMessage struct {
	intent dto.LiveIntent
	err    error
}

func (h *LiveHandler) serve(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, unsubscribe := h.hub.Subscribe(ctx)
	defer unsubscribe()

	intents := make(chan intentMessage)
	go readIntents(ctx, cancel, conn, intents)

	view := listing.NewView()
	var latest []models.Content
	loaded := false

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			latest, loaded = snap, true
		case msg := <-intents:
			err := msg.err
			if err == nil {
				err = h.applyIntent(view, msg.intent)
			}
			if err != nil {
				if werr := conn.WriteJSON(dto.NewErrorFrame(err.Error())); werr != nil {
					return
				}
				continue
			}
			if !loaded {
				continue
			}
		}

		frame := dto.NewSnapshotFrame(h.service.Render(ctx, view, latest))
		if err := conn.WriteJSON(frame); err != nil {
			slog.Debug("live write failed", "error", err)
			return
		}
	}
}

// readIntents owns the read side of conn. It cancels ctx when the client goes away.
func readIntents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- intentMessage) {
	defer cancel()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg intentMessage
		if err := json.Unmarshal(raw, &msg.intent); err != nil {
			msg.err = fmt.Errorf("malformed intent: %w", err)
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (h *LiveHandler) applyIntent(view *listing.View, in dto.LiveIntent) error {
	switch in.Action {
	case dto.IntentMode:
		mode, err := listing.ParseMode(in.Mode)
		if err != nil {
			return err
		}
		view.SetMode(mode)
	case dto.IntentPage:
		view.SetPage(in.Page)
	case dto.IntentLeaderboard:
		// year 0 closes the leaderboard
		if in.Year != 0 {
			if err := h.service.ValidateYear(in.Year); err != nil {
				return err
			}
		}
		view.SetYear(in.Year)
	case dto.IntentLeaderboardPage:
		view.SetLeaderboardPage(in.Page)
	default:
		return fmt.Errorf("unknown intent %q", in.Action)
	}
	return nil
}
