package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	gridorchestrator "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/grid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowed = nil
			break
		}
		allowed[o] = struct{}{}
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[r.Header.Get("Origin")]
			return ok
		},
	}
}

// GridSocket handles GET /api/grid/:id/ws. It pushes the same snapshots as
// SubscribeGrid, one JSON text message per grid. Incoming messages are
// ignored; a read error ends the subscription.
func (h *Handler) GridSocket(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := h.grids.Subscribe(ctx, &gridorchestrator.SubscribeInput{ID: id})
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer sub.Cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already replied to the client
		h.logger.Warn("websocket upgrade failed", zap.String("grid_id", id), zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.logger.Debug("websocket opened", zap.String("grid_id", id))
	go readPump(conn, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("websocket closed", zap.String("grid_id", id))
			return
		case g, ok := <-sub.Updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(grid.ToDTO(g)); err != nil {
				h.logger.Debug("websocket write failed", zap.String("grid_id", id), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection so control frames are processed and
// cancels once the peer disconnects.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
