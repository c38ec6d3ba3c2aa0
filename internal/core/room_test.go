package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureConn struct {
	frames []Frame
	fail   bool
}

func (c *captureConn) TrySend(f Frame) error {
	if c.fail {
		return errors.New("backpressure")
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureConn) Close() {}

func TestRoomBroadcast(t *testing.T) {
	room := NewRoomService("room-1")
	a, b, c := &captureConn{}, &captureConn{}, &captureConn{}
	room.Add("sa", a)
	room.Add("sb", b)
	room.Add("sc", c)

	t.Run("broadcast reaches everyone", func(t *testing.T) {
		res := room.Broadcast(Frame("hello"))
		assert.Equal(t, 3, res.SentTo)
		assert.Zero(t, res.Dropped)
		assert.Len(t, a.frames, 1)
		assert.Len(t, b.frames, 1)
		assert.Len(t, c.frames, 1)
	})

	t.Run("broadcast except skips the originator", func(t *testing.T) {
		res := room.BroadcastExcept("sa", Frame("delta"))
		assert.Equal(t, 2, res.SentTo)
		assert.Len(t, a.frames, 1)
		assert.Len(t, b.frames, 2)
		assert.Len(t, c.frames, 2)
	})

	t.Run("backpressured member is counted as dropped", func(t *testing.T) {
		b.fail = true
		res := room.Broadcast(Frame("x"))
		assert.Equal(t, 2, res.SentTo)
		assert.Equal(t, 1, res.Dropped)
	})

	t.Run("send targets one member", func(t *testing.T) {
		before := len(c.frames)
		assert.True(t, room.Send("sc", Frame("solo")))
		assert.Len(t, c.frames, before+1)
		assert.False(t, room.Send("ghost", Frame("solo")))
	})

	t.Run("removed member no longer receives", func(t *testing.T) {
		room.Remove("sc")
		before := len(c.frames)
		room.Broadcast(Frame("bye"))
		assert.Len(t, c.frames, before)
		assert.Equal(t, 2, room.MemberCount())
	})
}

func TestRoomManager(t *testing.T) {
	rm := NewRoomManager()

	t.Run("get or create is idempotent", func(t *testing.T) {
		r1 := rm.GetOrCreate("room-1")
		r2 := rm.GetOrCreate("room-1")
		assert.Same(t, r1, r2)
	})

	t.Run("get misses unknown rooms", func(t *testing.T) {
		_, ok := rm.Get("nope")
		assert.False(t, ok)
	})

	t.Run("list reports member counts", func(t *testing.T) {
		rm.GetOrCreate("room-1").Add("s1", &captureConn{})
		rm.GetOrCreate("room-2")

		infos := rm.List()
		require.Len(t, infos, 2)
		counts := map[string]int{}
		for _, info := range infos {
			counts[string(info.ID)] = info.MemberCount
		}
		assert.Equal(t, map[string]int{"room-1": 1, "room-2": 0}, counts)
	})

	t.Run("stop forgets the room", func(t *testing.T) {
		rm.StopRoom("room-2")
		_, ok := rm.Get("room-2")
		assert.False(t, ok)
	})
}
