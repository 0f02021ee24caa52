package dto

import "encoding/json"

// WebhookEvent is the tagged envelope posted by the transcoding provider.
// Data stays raw until the type is known.
type WebhookEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

// AssetReadyData is the data object of a video.asset.ready event.
type AssetReadyData struct {
	ID          string       `json:"id"`
	UploadID    string       `json:"upload_id"`
	Duration    float64      `json:"duration"`
	Status      string       `json:"status"`
	PlaybackIDs []PlaybackID `json:"playback_ids"`
}

type WebhookAckResponse struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
}
