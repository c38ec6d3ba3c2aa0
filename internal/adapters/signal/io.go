package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/metrics"
)

func (ctl *BoardWSController) writePump(ctx context.Context, c *WsBoardConn) {
	ticker := time.NewTicker(ctl.pingPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ctl *BoardWSController) readPump(ctx context.Context, sid core.SessionID, clientToken string, c *WsBoardConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		// The session ctx may already be canceled; the removal cycle
		// still needs to reach the store.
		ctl.Orch.OnDisconnect(context.WithoutCancel(ctx), sid)
		ctl.limit.Forget(sid)
		metrics.OpenConnections.Dec()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			if !ctl.limit.Allow(sid) {
				log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("rate limit exceeded, dropping event")
				continue
			}
			ctl.handleEvent(ctx, sid, clientToken, c, data)
		}
	}
}

// handleEvent dispatches one inbound frame by its type envelope.
// Bad payloads are logged and dropped; room events never get an error
// response, a stalled UI is the only symptom the client sees.
func (ctl *BoardWSController) handleEvent(ctx context.Context, sid core.SessionID, clientToken string, c *WsBoardConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		return
	}

	switch env.Type {
	case "joinRoom":
		ctl.handleJoin(ctx, sid, clientToken, data)
	case "imageAdded":
		ctl.handleImageAdded(ctx, data)
	case "imageMoved":
		ctl.handleImageMoved(ctx, data)
	case "imageResized":
		ctl.handleImageResized(ctx, data)
	case "imageDeleted":
		ctl.handleImageDeleted(ctx, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *BoardWSController) handlePing(c *WsBoardConn) {
	ctl.sendJSON(c, struct {
		Type string `json:"type"`
	}{Type: "pong"})
}

func (ctl *BoardWSController) sendJSON(c *WsBoardConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
