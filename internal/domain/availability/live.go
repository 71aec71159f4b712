package availability

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mwork/booking-api/internal/pkg/logger"
	"github.com/mwork/booking-api/internal/pkg/validator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

const (
	EventSelect       = "select"
	EventAvailability = "availability"
	EventError        = "error"
)

// Live handles WS /api/v1/professionals/{id}/availability/live.
// Every select message is answered with the availability for the chosen date and packages.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	send := make(chan []byte, 16)
	done := make(chan struct{})
	go liveWriter(conn, send, done)

	// the reader owns the request context and stays on this goroutine
	h.liveReader(r.Context(), conn, professionalID, send, done)
}

func (h *Handler) liveReader(ctx context.Context, conn *websocket.Conn, professionalID string, send chan<- []byte, done <-chan struct{}) {
	defer close(send)

	log := logger.FromContext(ctx)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("professional_id", professionalID).Msg("WebSocket read error")
			}
			return
		}

		event := h.answer(ctx, professionalID, message)
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode live event")
			continue
		}

		select {
		case send <- payload:
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) answer(ctx context.Context, professionalID string, message []byte) LiveEvent {
	var msg SelectMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return LiveEvent{Type: EventError, Error: "Invalid JSON message"}
	}
	if msg.Type != EventSelect {
		return LiveEvent{Type: EventError, Error: "Unsupported message type: " + msg.Type}
	}
	if errs := validator.Validate(&msg); errs != nil {
		field := slices.Sorted(maps.Keys(errs))[0]
		return LiveEvent{Type: EventError, Error: field + ": " + errs[field]}
	}

	result, err := h.service.GetAvailability(ctx, Query{
		ProfessionalID: professionalID,
		Date:           msg.Date,
		PackageIDs:     msg.PackageIDs,
	})
	switch {
	case err == nil:
		return LiveEvent{Type: EventAvailability, Data: result}
	case errors.Is(err, ErrUnknownPackage), errors.Is(err, ErrInvalidDate):
		return LiveEvent{Type: EventError, Error: err.Error()}
	default:
		logger.FromContext(ctx).Error().Err(err).Str("professional_id", professionalID).Msg("Live availability failed")
		return LiveEvent{Type: EventError, Error: "Availability is temporarily unavailable"}
	}
}

func liveWriter(conn *websocket.Conn, send <-chan []byte, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case message, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
