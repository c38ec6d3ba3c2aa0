package core

import (
	"sync"

	"github.com/collabcanvas/server/internal/domain"
)

// RoomManager tracks the rooms that currently have live connections.
// It is purely a fan-out index; room existence is decided by the store.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]RoomService
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[domain.RoomID]RoomService),
	}
}

func (rm *RoomManager) GetOrCreate(id domain.RoomID) RoomService {
	rm.mu.RLock()
	room, ok := rm.rooms[id]
	rm.mu.RUnlock()

	if ok {
		return room
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	if room, ok = rm.rooms[id]; !ok {
		room = NewRoomService(id)
		rm.rooms[id] = room
	}
	return room
}

func (rm *RoomManager) Get(id domain.RoomID) (RoomService, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	room, ok := rm.rooms[id]
	return room, ok
}

func (rm *RoomManager) List() []RoomInfo {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	out := make([]RoomInfo, 0, len(rm.rooms))
	for id, room := range rm.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: room.MemberCount()})
	}
	return out
}

func (rm *RoomManager) StopRoom(id domain.RoomID) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.rooms, id)
}
