package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/api/metrics"
	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// Options tunes the websocket endpoint.
type Options struct {
	// AllowedOrigins lists accepted Origin headers; "*" or an empty list accepts any.
	AllowedOrigins []string
	// SendBuffer is the number of frames queued per client before drops.
	SendBuffer int
}

// Handler upgrades HTTP requests to websockets and runs the
// authenticate → join room protocol on each connection.
type Handler struct {
	hub        *Hub
	verifier   ports.TokenVerifier
	upgrader   websocket.Upgrader
	sendBuffer int
	log        zerolog.Logger
}

func NewHandler(hub *Hub, verifier ports.TokenVerifier, opts Options, log zerolog.Logger) *Handler {
	h := &Handler{
		hub:        hub,
		verifier:   verifier,
		sendBuffer: opts.SendBuffer,
		log:        log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	return h
}

// ServeWS handles the websocket endpoint.
//
// @Summary      Realtime change feed
// @Description  Upgrades to a websocket. Send {"event":"authenticate","data":"<token>"} to join the user's room.
// @Tags         realtime
// @Success      101
// @Router       /ws [get]
func (h *Handler) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := newClient(conn, h.sendBuffer, h.log)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	go client.writePump()
	client.readPump(h.handleMessage)
	return nil
}

func (h *Handler) handleMessage(c *Client, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.reply(EventError, errorData{Error: "invalid message"})
		return
	}

	switch msg.Event {
	case EventAuthenticate:
		h.authenticate(c, msg.Data)
	default:
		c.reply(EventError, errorData{Error: "unknown event: " + msg.Event})
	}
}

// authenticate verifies the token and joins the user's room. A failure is
// reported to the client and the connection stays open for another try.
func (h *Handler) authenticate(c *Client, data json.RawMessage) {
	token := tokenFrom(data)
	if token == "" {
		metrics.RealtimeAuthTotal.WithLabelValues("error").Inc()
		c.reply(EventAuthError, errorData{Error: domain.ErrUnauthorized.Error()})
		return
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		metrics.RealtimeAuthTotal.WithLabelValues("error").Inc()
		reason := domain.ErrTokenInvalid.Error()
		if errors.Is(err, domain.ErrTokenExpired) {
			reason = domain.ErrTokenExpired.Error()
		}
		c.log.Debug().Err(err).Msg("socket authentication rejected")
		c.reply(EventAuthError, errorData{Error: reason})
		return
	}

	room := RoomName(identity.ID)
	h.hub.Join(c, room)
	metrics.RealtimeAuthTotal.WithLabelValues("ok").Inc()
	c.log.Info().Int64("user_id", identity.ID).Str("room", room).Msg("socket authenticated")
	c.reply(EventAuthenticated, authenticatedData{OK: true})
}

// tokenFrom accepts either "<token>" or {"token":"<token>"} as payload.
func tokenFrom(data json.RawMessage) string {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		return strings.TrimSpace(token)
	}
	var obj struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return strings.TrimSpace(obj.Token)
	}
	return ""
}

func originChecker(allowed []string) func(*http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			allowed = nil
			break
		}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
