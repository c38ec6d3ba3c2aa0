package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageItemJSONRoundTrip(t *testing.T) {
	t.Run("known fields", func(t *testing.T) {
		var img ImageItem
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","x":1.5,"y":2,"width":100,"height":50}`), &img))
		assert.Equal(t, "a", img.ID)
		assert.Equal(t, 1.5, img.X)
		assert.Equal(t, 2.0, img.Y)

		raw, err := json.Marshal(img)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"a","x":1.5,"y":2,"width":100,"height":50}`, string(raw))
	})

	t.Run("opaque extras survive the round trip", func(t *testing.T) {
		in := `{"id":"a","x":0,"y":0,"width":10,"height":10,"src":"https://cdn/img.png","zIndex":3,"meta":{"by":"u1"}}`
		var img ImageItem
		require.NoError(t, json.Unmarshal([]byte(in), &img))

		raw, err := json.Marshal(img)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(raw))
	})

	t.Run("extras do not leak between items", func(t *testing.T) {
		var a, b ImageItem
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","src":"one.png"}`), &a))
		require.NoError(t, json.Unmarshal([]byte(`{"id":"b"}`), &b))

		raw, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"b","x":0,"y":0,"width":0,"height":0}`, string(raw))
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		var img ImageItem
		assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &img))
	})
}
