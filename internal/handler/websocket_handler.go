package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dompet-app/dompet-backend/internal/ledger"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/session"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// JWTValidator validates JWT tokens and returns the user ID
type JWTValidator interface {
	ValidateToken(ctx context.Context, token string) (userID uuid.UUID, err error)
}

// Client message types
const (
	MessageSessionOpen   = "session.open"
	MessageSessionPeriod = "session.period"
	MessageSessionClose  = "session.close"
)

// ClientMessage is a message sent by the app over the websocket
type ClientMessage struct {
	Type        string `json:"type"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
}

var errUnknownMessage = errors.New("unknown message type")

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *websocket.Hub
	validator      JWTValidator
	ledger         session.Subscriber
	prefs          session.PreferenceWriter
	workspaces     middleware.WorkspaceLookup
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, validator JWTValidator, ledger session.Subscriber, prefs session.PreferenceWriter, workspaces middleware.WorkspaceLookup, allowedOrigins []string) *WebSocketHandler {
	// Build origin lookup map
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		validator:      validator,
		ledger:         ledger,
		prefs:          prefs,
		workspaces:     workspaces,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., the mobile app)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	// Get token from query parameter
	token := c.QueryParam("token")
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	userID, err := h.validator.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, userID, h.hub)

	log.Info().
		Str("user_id", userID.String()).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	// The request context ends when this handler returns
	ctx, cancel := context.WithCancel(context.Background())
	conv := newConversation(ctx, client, userID, h.ledger, h.prefs, h.workspaces)

	go client.WritePump()
	go func() {
		defer func() {
			conv.session.Close()
			cancel()
			log.Info().Str("client_id", client.ID()).Msg("WebSocket client disconnected")
		}()
		client.ReadPump(conv.handle)
	}()

	return nil
}

// eventSender is the part of a websocket client a conversation writes to
type eventSender interface {
	ID() string
	SendEvent(event websocket.Event) error
	Watch(workspaceID uuid.UUID)
	Close() error
}

// conversation ties one connection to its ledger session
type conversation struct {
	ctx        context.Context
	client     eventSender
	session    *session.Session
	workspaces middleware.WorkspaceLookup
	userID     uuid.UUID
}

func newConversation(ctx context.Context, client eventSender, userID uuid.UUID, ledger session.Subscriber, prefs session.PreferenceWriter, workspaces middleware.WorkspaceLookup) *conversation {
	conv := &conversation{
		ctx:        ctx,
		client:     client,
		workspaces: workspaces,
		userID:     userID,
	}
	conv.session = session.New(userID, ledger, prefs, conv)
	return conv
}

// OnView implements session.Listener
func (c *conversation) OnView(view *ledger.MonthView) {
	c.send(websocket.LedgerSnapshot(view))
}

// OnError implements session.Listener
func (c *conversation) OnError(workspaceID uuid.UUID, err error) {
	c.send(websocket.LedgerError(workspaceID, err))
}

// send delivers an event to the client. A client that has fallen behind is
// disconnected, since it would otherwise keep showing a stale view.
func (c *conversation) send(event websocket.Event) {
	err := c.client.SendEvent(event)
	if err == nil {
		return
	}
	log.Debug().Err(err).Str("client_id", c.client.ID()).Str("type", event.Type).Msg("Dropped ledger event")
	if errors.Is(err, websocket.ErrClientBufferFull) {
		go c.client.Close()
	}
}

// handle processes one client message. Failures are reported to the client
// as ledger.error events; the connection stays open.
func (c *conversation) handle(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.OnError(c.session.WorkspaceID(), fmt.Errorf("invalid message: %w", err))
		return
	}

	if err := c.dispatch(msg); err != nil {
		log.Debug().Err(err).Str("client_id", c.client.ID()).Str("type", msg.Type).Msg("WebSocket message rejected")
		c.OnError(c.session.WorkspaceID(), err)
	}
}

func (c *conversation) dispatch(msg ClientMessage) error {
	switch msg.Type {
	case MessageSessionOpen:
		workspaceID, err := uuid.Parse(msg.WorkspaceID)
		if err != nil {
			return fmt.Errorf("invalid workspace ID %q", msg.WorkspaceID)
		}
		if msg.Month < 0 || msg.Month > 12 {
			return session.ErrInvalidPeriod
		}
		lookupCtx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
		defer cancel()
		if _, err := c.workspaces.GetWorkspace(lookupCtx, c.userID, workspaceID); err != nil {
			return err
		}
		c.client.Watch(workspaceID)
		return c.session.Open(c.ctx, workspaceID, msg.Year, time.Month(msg.Month))

	case MessageSessionPeriod:
		return c.session.SetPeriod(msg.Year, time.Month(msg.Month))

	case MessageSessionClose:
		c.session.Close()
		c.client.Watch(uuid.Nil)
		return nil

	default:
		return fmt.Errorf("%w %q", errUnknownMessage, msg.Type)
	}
}
