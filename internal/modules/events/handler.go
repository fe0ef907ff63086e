package events

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"agentcrm/internal/pkg/jwt"
	"agentcrm/internal/pkg/logger"
	"agentcrm/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Разрешаем подключения с любого origin (для dev)
	// В production заменить на проверку origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{hub: hub, jwtService: jwtService}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/ws", h.HandleWebSocket)
}

// HandleWebSocket обрабатывает WebSocket подключение агента.
//
// Endpoint: GET /api/events/ws?token=JWT_TOKEN
//
// Аутентификация через query parameter (WebSocket не поддерживает headers)
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "token is required, use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	agentID := claims.AgentID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(agentID, conn)
	logger.Log.Info("agent connected via websocket", zap.String("agent_id", agentID))

	defer func() {
		h.hub.Unregister(agentID)
		_ = conn.Close()
		logger.Log.Info("agent disconnected from websocket", zap.String("agent_id", agentID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go h.pingLoop(conn)

	h.readLoop(conn, agentID)
}

// pingLoop отправляет ping каждые 30 секунд
func (h *Handler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

// readLoop дочитывает входящие кадры: канал событий односторонний,
// клиентские сообщения игнорируются, выход — по закрытию соединения.
func (h *Handler) readLoop(conn *websocket.Conn, agentID string) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logger.Log.Warn("websocket read error",
					zap.String("agent_id", agentID), zap.Error(err))
			}
			return
		}
	}
}
