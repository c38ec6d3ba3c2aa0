// Package domain holds the canonical room state and its pure mutations.
// Nothing here performs I/O or fails; unknown targets are no-ops.
package domain

type RoomID string

// Participant is one room member. UserID is the stable identity a client
// keeps across reconnects; ID is the ephemeral connection id and changes
// on every reconnect.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// RoomState is the unit of persistence and synchronization for one room.
// Invariant: at most one Participant per UserID.
type RoomState struct {
	Users  []Participant `json:"users"`
	Images []ImageItem   `json:"images"`
}

// NewRoomState returns an empty room. Slices are non-nil so the state
// serializes as [] rather than null.
func NewRoomState() *RoomState {
	return &RoomState{
		Users:  []Participant{},
		Images: []ImageItem{},
	}
}

// AddParticipant registers a member. If the userID is already present the
// existing record's connection id is updated in place (a reconnect) and
// isNewJoin is false; otherwise a new participant is appended.
func (s *RoomState) AddParticipant(connID, userID, name string) (isNewJoin bool) {
	for i := range s.Users {
		if s.Users[i].UserID == userID {
			s.Users[i].ID = connID
			return false
		}
	}
	s.Users = append(s.Users, Participant{ID: connID, Name: name, UserID: userID})
	return true
}

// RemoveParticipant drops the member with the given userID, preserving
// the order of the rest. Reports whether a removal happened.
func (s *RoomState) RemoveParticipant(userID string) bool {
	for i := range s.Users {
		if s.Users[i].UserID == userID {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return true
		}
	}
	return false
}

// Participant returns the member with the given userID, if present.
func (s *RoomState) Participant(userID string) (Participant, bool) {
	for i := range s.Users {
		if s.Users[i].UserID == userID {
			return s.Users[i], true
		}
	}
	return Participant{}, false
}

// AddImage appends an item. Order is insertion order.
func (s *RoomState) AddImage(img ImageItem) {
	s.Images = append(s.Images, img)
}

// MoveImage updates the position of the item with the given id.
// Unknown ids are a no-op; a move can race a delete.
func (s *RoomState) MoveImage(id string, x, y float64) bool {
	for i := range s.Images {
		if s.Images[i].ID == id {
			s.Images[i].X = x
			s.Images[i].Y = y
			return true
		}
	}
	return false
}

// ResizeImage updates the dimensions of the item with the given id.
// Unknown ids are a no-op.
func (s *RoomState) ResizeImage(id string, width, height float64) bool {
	for i := range s.Images {
		if s.Images[i].ID == id {
			s.Images[i].Width = width
			s.Images[i].Height = height
			return true
		}
	}
	return false
}

// DeleteImage removes the item with the given id in place, keeping the
// relative order of the survivors. Unknown ids are a no-op.
func (s *RoomState) DeleteImage(id string) bool {
	for i := range s.Images {
		if s.Images[i].ID == id {
			s.Images = append(s.Images[:i], s.Images[i+1:]...)
			return true
		}
	}
	return false
}
