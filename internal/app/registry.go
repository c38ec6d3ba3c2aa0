package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
)

// sessionEntry is the per-connection attachment: which room and durable
// user this socket is acting for. Room fields stay empty until joinRoom.
type sessionEntry struct {
	RoomID domain.RoomID
	UserID string
	Name   string
	Conn   core.BoardConnection
	Cancel context.CancelFunc
}

// Registry maps live connections to their room/user attachment.
// It backs disconnect handling: the socket carries no ambient state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// Bind registers a fresh connection before it has joined any room.
func (r *Registry) Bind(sid core.SessionID, conn core.BoardConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

// SetRoom records the room/user attachment after a successful join.
func (r *Registry) SetRoom(sid core.SessionID, roomID domain.RoomID, userID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	entry.RoomID = roomID
	entry.UserID = userID
	entry.Name = name
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(roomID)).Str("user", userID).Msg("session joined room")
	return true
}

// RoomOf reports the room/user attachment for a connection. ok is false
// for unknown sessions and for sessions that never joined a room.
func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.RoomID == "" {
		return "", "", false
	}
	return entry.RoomID, entry.UserID, true
}

func (r *Registry) Conn(sid core.SessionID) (core.BoardConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.sessions[sid]; ok {
		return entry.Conn, true
	}
	return nil, false
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbound session")
}

// Cancel stops the session's pumps. Used when evicting a connection.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	entry, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if entry.Cancel != nil {
		entry.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
