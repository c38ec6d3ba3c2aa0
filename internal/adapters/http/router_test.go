package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabcanvas/server/internal/app"
	"github.com/collabcanvas/server/internal/config"
	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
	"github.com/collabcanvas/server/internal/store"
)

func setupRouterTest(t *testing.T) (http.Handler, *store.Client, *app.Orchestrator) {
	t.Helper()
	mr := miniredis.RunT(t)
	db := store.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { db.Close() })

	orch := &app.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    core.NewRoomManager(),
		Store:    db,
	}
	cfg := &config.Config{
		Mode:         "release",
		Secret:       "test-secret",
		ReadLimit:    65536,
		PingPeriod:   54 * time.Second,
		RateLimit:    100,
		RateInterval: time.Second,
	}
	return SetupRouter(context.Background(), cfg, orch, db), db, orch
}

func TestCreateRoom(t *testing.T) {
	r, db, _ := setupRouterTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		RoomID string `json:"roomId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.RoomID)

	// The fresh room is persisted empty, ready for the first join.
	state, err := db.Load(context.Background(), domain.RoomID(resp.RoomID))
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Empty(t, state.Users)
	assert.Empty(t, state.Images)
}

func TestCreateRoomStoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	db := store.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { db.Close() })

	orch := &app.Orchestrator{Registry: app.NewRegistry(), Rooms: core.NewRoomManager(), Store: db}
	cfg := &config.Config{Mode: "release", Secret: "s", RateLimit: 1, RateInterval: time.Second}
	r := SetupRouter(context.Background(), cfg, orch, db)

	mr.SetError("redis down")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/rooms", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListRooms(t *testing.T) {
	r, _, orch := setupRouterTest(t)
	orch.Rooms.GetOrCreate("room-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rooms []core.RoomInfo `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, domain.RoomID("room-1"), resp.Rooms[0].ID)
}

func TestProbes(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	t.Run("banner", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Collaborative canvas server")
	})

	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestClientTokenCookie(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "ct" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a client token cookie to be set")
}
