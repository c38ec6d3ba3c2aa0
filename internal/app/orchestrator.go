package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
	"github.com/collabcanvas/server/internal/metrics"
)

// StateStore is the persistence contract the orchestrator depends on.
// Absent and malformed rooms both come back as (nil, nil).
type StateStore interface {
	Load(ctx context.Context, roomID domain.RoomID) (*domain.RoomState, error)
	Save(ctx context.Context, roomID domain.RoomID, state *domain.RoomState) error
}

// Orchestrator turns one inbound client event into one
// load-mutate-save-broadcast cycle. The store is the single source of
// truth; no room state is cached here. Failures are logged and the cycle
// aborts without a broadcast — clients never see an error response.
type Orchestrator struct {
	Registry *Registry
	Rooms    core.RoomFactory
	Store    StateStore
}

// Join admits a connection into a room: first-join appends a
// participant and announces it, reconnect merges into the existing
// presence record. The joiner alone gets the full state snapshot;
// everyone, joiner included, gets the refreshed user list.
func (o *Orchestrator) Join(ctx context.Context, sid core.SessionID, roomID domain.RoomID, userID, userName string) {
	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return
	}

	// Re-join to a different room leaves the old fan-out set silently;
	// the old room's presence record stays until this user disconnects.
	if prev, _, joined := o.Registry.RoomOf(sid); joined && prev != roomID {
		o.leaveFanout(prev, sid)
	}

	room := o.Rooms.GetOrCreate(roomID)
	o.Registry.SetRoom(sid, roomID, userID, userName)
	room.Add(sid, conn)

	state, err := o.Store.Load(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Msg("join: load failed")
		metrics.CycleFailures.Inc()
		return
	}
	if state == nil {
		// Absent room on join means a fresh one, not an error.
		state = domain.NewRoomState()
	}

	if isNewJoin := state.AddParticipant(string(sid), userID, userName); isNewJoin {
		if frame, err := encode(userJoinedEvent{Type: "userJoined", ID: string(sid), Name: userName, UserID: userID}); err == nil {
			room.BroadcastExcept(sid, frame)
		}
		log.Info().Str("module", "app.orchestrator").Str("room", string(roomID)).Str("user", userID).Msg("participant joined")
	} else {
		log.Info().Str("module", "app.orchestrator").Str("room", string(roomID)).Str("user", userID).Str("sid", string(sid)).Msg("participant reconnected")
	}

	if err := o.Store.Save(ctx, roomID, state); err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Msg("join: save failed")
		metrics.CycleFailures.Inc()
		return
	}

	if frame, err := encode(currentRoomStateEvent{Type: "currentRoomState", Users: state.Users, Images: state.Images}); err == nil {
		room.Send(sid, frame)
	}
	if frame, err := encode(userListUpdateEvent{Type: "userListUpdate", Users: state.Users}); err == nil {
		room.Broadcast(frame)
	}
	metrics.EventsProcessed.WithLabelValues("joinRoom").Inc()
}

func (o *Orchestrator) ImageAdded(ctx context.Context, roomID domain.RoomID, img domain.ImageItem) {
	o.imageCycle(ctx, roomID, "imageAdded",
		func(s *domain.RoomState) { s.AddImage(img) },
		imageAddedEvent{Type: "imageAdded", Image: img},
	)
}

func (o *Orchestrator) ImageMoved(ctx context.Context, roomID domain.RoomID, imageID string, x, y float64) {
	o.imageCycle(ctx, roomID, "imageMoved",
		func(s *domain.RoomState) { s.MoveImage(imageID, x, y) },
		imageMovedEvent{Type: "imageMoved", ImageID: imageID, Position: position{X: x, Y: y}},
	)
}

func (o *Orchestrator) ImageResized(ctx context.Context, roomID domain.RoomID, imageID string, width, height float64) {
	o.imageCycle(ctx, roomID, "imageResized",
		func(s *domain.RoomState) { s.ResizeImage(imageID, width, height) },
		imageResizedEvent{Type: "imageResized", ImageID: imageID, Size: size{Width: width, Height: height}},
	)
}

func (o *Orchestrator) ImageDeleted(ctx context.Context, roomID domain.RoomID, imageID string) {
	o.imageCycle(ctx, roomID, "imageDeleted",
		func(s *domain.RoomState) { s.DeleteImage(imageID) },
		imageDeletedEvent{Type: "imageDeleted", ImageID: imageID},
	)
}

// imageCycle is the shared read-mutate-persist-broadcast path for image
// events. An absent room abandons the event silently. Mutations hitting
// an unknown image id still broadcast: the delta is harmless to replay
// and the originator has already applied it optimistically.
func (o *Orchestrator) imageCycle(ctx context.Context, roomID domain.RoomID, evType string, mutate func(*domain.RoomState), event any) {
	state, err := o.Store.Load(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Str("event", evType).Msg("load failed")
		metrics.CycleFailures.Inc()
		return
	}
	if state == nil {
		log.Debug().Str("module", "app.orchestrator").Str("room", string(roomID)).Str("event", evType).Msg("room absent, dropping event")
		metrics.EventsDropped.Inc()
		return
	}

	mutate(state)

	if err := o.Store.Save(ctx, roomID, state); err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Str("event", evType).Msg("save failed")
		metrics.CycleFailures.Inc()
		return
	}

	frame, err := encode(event)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("event", evType).Msg("encode failed")
		return
	}
	if room, ok := o.Rooms.Get(roomID); ok {
		room.Broadcast(frame)
	}
	metrics.EventsProcessed.WithLabelValues(evType).Inc()
}

// OnDisconnect removes the connection's presence, if it had any.
// A connection that never joined a room triggers no room-side effect;
// a userId already absent from the room means no write and no broadcast.
func (o *Orchestrator) OnDisconnect(ctx context.Context, sid core.SessionID) {
	roomID, userID, joined := o.Registry.RoomOf(sid)
	o.Registry.Unbind(sid)
	if !joined {
		return
	}

	o.leaveFanout(roomID, sid)

	state, err := o.Store.Load(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Msg("disconnect: load failed")
		metrics.CycleFailures.Inc()
		return
	}
	if state == nil {
		return
	}
	if !state.RemoveParticipant(userID) {
		return
	}

	if err := o.Store.Save(ctx, roomID, state); err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Str("room", string(roomID)).Msg("disconnect: save failed")
		metrics.CycleFailures.Inc()
		return
	}

	if room, ok := o.Rooms.Get(roomID); ok {
		if frame, err := encode(userListUpdateEvent{Type: "userListUpdate", Users: state.Users}); err == nil {
			room.Broadcast(frame)
		}
	}
	log.Info().Str("module", "app.orchestrator").Str("room", string(roomID)).Str("user", userID).Msg("participant removed")
	metrics.EventsProcessed.WithLabelValues("disconnect").Inc()
}

func (o *Orchestrator) leaveFanout(roomID domain.RoomID, sid core.SessionID) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	room.Remove(sid)
	if room.MemberCount() == 0 {
		o.Rooms.StopRoom(roomID)
	}
}
