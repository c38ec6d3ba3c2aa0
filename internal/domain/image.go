package domain

import "encoding/json"

// ImageItem is a positioned, sized rectangle on the shared canvas.
// Clients attach arbitrary extra fields (src, alt, z-index, ...); those
// are carried opaquely so a round trip through the store keeps them.
type ImageItem struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64

	extra map[string]json.RawMessage
}

func (img ImageItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(img.extra)+5)
	for k, v := range img.extra {
		out[k] = v
	}
	out["id"], _ = json.Marshal(img.ID)
	out["x"], _ = json.Marshal(img.X)
	out["y"], _ = json.Marshal(img.Y)
	out["width"], _ = json.Marshal(img.Width)
	out["height"], _ = json.Marshal(img.Height)
	return json.Marshal(out)
}

func (img *ImageItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	known := struct {
		ID     string  `json:"id"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}{}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	img.ID = known.ID
	img.X = known.X
	img.Y = known.Y
	img.Width = known.Width
	img.Height = known.Height

	delete(raw, "id")
	delete(raw, "x")
	delete(raw, "y")
	delete(raw, "width")
	delete(raw, "height")
	if len(raw) > 0 {
		img.extra = raw
	} else {
		img.extra = nil
	}
	return nil
}
