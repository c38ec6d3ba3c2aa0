package app

import (
	"encoding/json"

	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
)

// Outbound event shapes. Joiners get a full snapshot; steady-state
// members only get deltas carrying what is needed to replay the change.

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type currentRoomStateEvent struct {
	Type   string               `json:"type"`
	Users  []domain.Participant `json:"users"`
	Images []domain.ImageItem   `json:"images"`
}

type userListUpdateEvent struct {
	Type  string               `json:"type"`
	Users []domain.Participant `json:"users"`
}

type userJoinedEvent struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

type imageAddedEvent struct {
	Type  string           `json:"type"`
	Image domain.ImageItem `json:"image"`
}

type imageMovedEvent struct {
	Type     string   `json:"type"`
	ImageID  string   `json:"imageId"`
	Position position `json:"position"`
}

type imageResizedEvent struct {
	Type    string `json:"type"`
	ImageID string `json:"imageId"`
	Size    size   `json:"size"`
}

type imageDeletedEvent struct {
	Type    string `json:"type"`
	ImageID string `json:"imageId"`
}

// encode marshals an outbound event. The shapes above cannot fail to
// marshal, so the error path only exists for opaque image extras.
func encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
