// Package signal is the websocket adapter: it upgrades connections,
// decodes the JSON event envelope, and hands events to the orchestrator.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/app"
	"github.com/collabcanvas/server/internal/config"
	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/metrics"
)

var ErrBackpressure = errors.New("backpressure")

type BoardWSController struct {
	Orch  *app.Orchestrator
	Cfg   *config.Config
	limit *EventRateLimiter
}

func NewBoardWSController(orch *app.Orchestrator, cfg *config.Config) *BoardWSController {
	return &BoardWSController{
		Orch:  orch,
		Cfg:   cfg,
		limit: NewEventRateLimiter(cfg.RateLimit, cfg.RateInterval),
	}
}

type WsBoardConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsBoardConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsBoardConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleBoard upgrades the request and starts the pumps. Each socket
// gets a fresh session id; the durable userId arrives with joinRoom.
func (ctl *BoardWSController) HandleBoard(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	conn := &WsBoardConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.Bind(sid, conn, cancel)
	metrics.OpenConnections.Inc()

	// Stable client token from the cookie middleware; used as the
	// fallback user identity when joinRoom carries none.
	clientToken := c.GetString("client_token")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, clientToken, conn)
}

func (ctl *BoardWSController) pingPeriod() time.Duration {
	if ctl.Cfg.PingPeriod > 0 {
		return ctl.Cfg.PingPeriod
	}
	return 54 * time.Second
}
