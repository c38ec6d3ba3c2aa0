package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/domain"
)

func (ctl *BoardWSController) handleImageAdded(ctx context.Context, data []byte) {
	type payload struct {
		Type   string           `json:"type"`
		RoomID string           `json:"roomId"`
		Image  domain.ImageItem `json:"image"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad imageAdded payload")
		return
	}
	if p.RoomID == "" || p.Image.ID == "" {
		log.Warn().Str("module", "signal").Msg("imageAdded missing roomId or image id")
		return
	}
	ctl.Orch.ImageAdded(ctx, domain.RoomID(p.RoomID), p.Image)
}

func (ctl *BoardWSController) handleImageMoved(ctx context.Context, data []byte) {
	type payload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		ImageID  string `json:"imageId"`
		Position struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"position"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad imageMoved payload")
		return
	}
	if p.RoomID == "" || p.ImageID == "" {
		return
	}
	ctl.Orch.ImageMoved(ctx, domain.RoomID(p.RoomID), p.ImageID, p.Position.X, p.Position.Y)
}

func (ctl *BoardWSController) handleImageResized(ctx context.Context, data []byte) {
	type payload struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		ImageID string `json:"imageId"`
		Size    struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"size"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad imageResized payload")
		return
	}
	if p.RoomID == "" || p.ImageID == "" {
		return
	}
	ctl.Orch.ImageResized(ctx, domain.RoomID(p.RoomID), p.ImageID, p.Size.Width, p.Size.Height)
}

func (ctl *BoardWSController) handleImageDeleted(ctx context.Context, data []byte) {
	type payload struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		ImageID string `json:"imageId"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad imageDeleted payload")
		return
	}
	if p.RoomID == "" || p.ImageID == "" {
		return
	}
	ctl.Orch.ImageDeleted(ctx, domain.RoomID(p.RoomID), p.ImageID)
}
