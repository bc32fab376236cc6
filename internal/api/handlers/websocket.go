package handlers

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"stockroom/internal/api/ws"
	"stockroom/internal/config"
)

type WebSocketHandler struct {
	cfg      *config.Config
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(cfg *config.Config) *WebSocketHandler {
	return &WebSocketHandler{
		cfg: cfg,
		hub: ws.GetHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// CORS is enforced at the HTTP layer
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and keeps the connection in
// the hub until the client goes away. The token travels as a query
// parameter because browsers cannot set headers on websocket dials.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	userID, err := h.authenticate(c.QueryParam("token"))
	if err != nil {
		return ErrUnauthorized(c)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

func (h *WebSocketHandler) authenticate(tokenStr string) (uuid.UUID, error) {
	token, err := jwtv5.Parse(tokenStr, func(t *jwtv5.Token) (interface{}, error) {
		return []byte(h.cfg.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwtv5.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return uuid.Nil, jwtv5.ErrTokenInvalidClaims
	}

	idStr, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, jwtv5.ErrTokenInvalidClaims
	}

	return uuid.Parse(idStr)
}
