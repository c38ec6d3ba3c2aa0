package core

import "github.com/collabcanvas/server/internal/domain"

// Frame is one outbound JSON payload.
type Frame []byte

// SessionID identifies a single websocket connection. It changes on
// every reconnect; the durable identity is domain.Participant.UserID.
type SessionID string

// BoardConnection abstracts the messaging transport for one member.
// Owned by the adapter; the adapter must Close() it.
type BoardConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports fan-out delivery stats back to the orchestrator.
// Delivery is fire-and-forget; dropped members were backpressured.
type PublishResult struct {
	SentTo  int
	Dropped int
}

type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

// RoomService owns the set of live connections subscribed to one room.
// It never touches the persisted state; that lives in the store.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int

	Add(sid SessionID, conn BoardConnection)
	Remove(sid SessionID)

	// Broadcast delivers to every member, the originator included.
	Broadcast(data Frame) PublishResult
	// BroadcastExcept delivers to every member but one.
	BroadcastExcept(skip SessionID, data Frame) PublishResult
	// Send delivers to a single member, if subscribed.
	Send(sid SessionID, data Frame) bool
}

type RoomFactory interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	StopRoom(id domain.RoomID)
}
