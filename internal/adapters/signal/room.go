package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/core"
	"github.com/collabcanvas/server/internal/domain"
)

func (ctl *BoardWSController) handleJoin(ctx context.Context, sid core.SessionID, clientToken string, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		UserName string `json:"userName"`
		UserID   string `json:"userId"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		return
	}
	if p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join without roomId")
		return
	}

	userID := p.UserID
	if userID == "" {
		userID = clientToken
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Str("user", userID).Msg("join")
	ctl.Orch.Join(ctx, sid, domain.RoomID(p.RoomID), userID, p.UserName)
}
