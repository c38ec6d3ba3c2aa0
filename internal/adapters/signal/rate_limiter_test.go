package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventRateLimiter(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewEventRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("s1"))
		}
		assert.False(t, rl.Allow("s1"))
	})

	t.Run("sessions are limited independently", func(t *testing.T) {
		rl := NewEventRateLimiter(1, time.Minute)
		assert.True(t, rl.Allow("s1"))
		assert.True(t, rl.Allow("s2"))
		assert.False(t, rl.Allow("s1"))
	})

	t.Run("window slides", func(t *testing.T) {
		rl := NewEventRateLimiter(1, 10*time.Millisecond)
		assert.True(t, rl.Allow("s1"))
		assert.False(t, rl.Allow("s1"))

		time.Sleep(15 * time.Millisecond)
		assert.True(t, rl.Allow("s1"))
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		rl := NewEventRateLimiter(0, time.Minute)
		for i := 0; i < 100; i++ {
			assert.True(t, rl.Allow("s1"))
		}
	})

	t.Run("forget resets a session", func(t *testing.T) {
		rl := NewEventRateLimiter(1, time.Minute)
		assert.True(t, rl.Allow("s1"))
		rl.Forget("s1")
		assert.True(t, rl.Allow("s1"))
	})
}
