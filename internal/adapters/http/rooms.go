package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/app"
	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
)

type RoomsAPI struct {
	Store app.StateStore
	Rooms core.RoomFactory
}

// Create mints a fresh room: a uuid roomId with an empty state persisted
// under it, so a subsequent joinRoom finds the room present.
func (a *RoomsAPI) Create(c *gin.Context) {
	roomID := domain.RoomID(uuid.NewString())

	if err := a.Store.Save(c.Request.Context(), roomID, domain.NewRoomState()); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("room create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	log.Info().Str("module", "adapters.http").Str("room", string(roomID)).Msg("room created")
	c.JSON(http.StatusCreated, gin.H{"roomId": roomID})
}

// List reports the rooms that currently have live connections.
// Idle rooms exist only in the store and are not listed here.
func (a *RoomsAPI) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": a.Rooms.List()})
}
