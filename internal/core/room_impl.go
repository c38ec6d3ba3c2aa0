package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/domain"
)

// roomImpl is a threadsafe in-memory subscription set.
// It never closes adapter-owned connections.
type roomImpl struct {
	id    domain.RoomID
	mu    sync.RWMutex
	conns map[SessionID]BoardConnection
}

func NewRoomService(id domain.RoomID) RoomService {
	return &roomImpl{
		id:    id,
		conns: make(map[SessionID]BoardConnection),
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *roomImpl) Add(sid SessionID, conn BoardConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[sid] = conn
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member added")
}

func (r *roomImpl) Remove(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, sid)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member removed")
}

func (r *roomImpl) Broadcast(data Frame) PublishResult {
	return r.publish(data, func(SessionID) bool { return true })
}

func (r *roomImpl) BroadcastExcept(skip SessionID, data Frame) PublishResult {
	return r.publish(data, func(sid SessionID) bool { return sid != skip })
}

func (r *roomImpl) publish(data Frame, want func(SessionID) bool) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, conn := range r.conns {
		if !want(sid) {
			continue
		}
		if err := conn.TrySend(data); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}

func (r *roomImpl) Send(sid SessionID, data Frame) bool {
	r.mu.RLock()
	conn, ok := r.conns[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	return conn.TrySend(data) == nil
}
