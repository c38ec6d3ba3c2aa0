// Package http wires the gin routes: the rooms API, the websocket
// endpoint, and the operational probes.
package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/adapters/signal"
	"github.com/collabcanvas/server/internal/app"
	"github.com/collabcanvas/server/internal/config"
	"github.com/collabcanvas/server/internal/metrics"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware hands every browser a stable token cookie.
// It serves as the fallback user identity for clients that do not
// supply a userId on join.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator, db app.StateStore) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("CanvasSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(200, "<h1>Collaborative canvas server is up!</h1>")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	roomsAPI := &RoomsAPI{Store: db, Rooms: orch.Rooms}
	api := r.Group("/api")
	api.POST("/rooms", roomsAPI.Create)
	api.GET("/rooms", roomsAPI.List)

	ctrl := signal.NewBoardWSController(orch, cfg)
	r.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("ct", c.GetString("client_token")).Msg("ws endpoint hit")
		ctrl.HandleBoard(ctx, c)
	})

	return r
}
