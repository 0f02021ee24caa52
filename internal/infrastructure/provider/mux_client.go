package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/repositories"

	"github.com/gofiber/fiber/v2"
)

var ErrNotConfigured = errors.New("provider credentials not configured")

// MuxClient talks to the transcoding provider's REST API.
type MuxClient struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	corsOrigin  string
	timeout     time.Duration
}

func NewMuxClient(baseURL, tokenID, tokenSecret, corsOrigin string, timeout time.Duration) repositories.AssetProvider {
	return &MuxClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokenID:     tokenID,
		tokenSecret: tokenSecret,
		corsOrigin:  corsOrigin,
		timeout:     timeout,
	}
}

type createUploadRequest struct {
	NewAssetSettings struct {
		PlaybackPolicy []string `json:"playback_policy"`
	} `json:"new_asset_settings"`
	CorsOrigin string `json:"cors_origin,omitempty"`
}

type createUploadResponse struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

func (m *MuxClient) CreateDirectUpload(ctx context.Context) (*dto.DirectUpload, error) {
	if m.tokenID == "" || m.tokenSecret == "" {
		return nil, ErrNotConfigured
	}
	var req createUploadRequest
	req.NewAssetSettings.PlaybackPolicy = []string{"public"}
	req.CorsOrigin = m.corsOrigin

	a := fiber.Post(m.baseURL+"/video/v1/uploads").
		BasicAuth(m.tokenID, m.tokenSecret).
		JSON(req).
		Timeout(m.deadline(ctx))

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("create upload: %w", errors.Join(errs...))
	}
	if code != fiber.StatusCreated && code != fiber.StatusOK {
		return nil, fmt.Errorf("create upload: unexpected status %d", code)
	}

	var resp createUploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("create upload: decode response: %w", err)
	}
	if resp.Data.ID == "" || resp.Data.URL == "" {
		return nil, fmt.Errorf("create upload: incomplete response")
	}
	return &dto.DirectUpload{UploadURL: resp.Data.URL, UploadID: resp.Data.ID}, nil
}

// DeleteAsset revokes an asset. A 404 means it is already gone.
func (m *MuxClient) DeleteAsset(ctx context.Context, assetID string) error {
	if m.tokenID == "" || m.tokenSecret == "" {
		return ErrNotConfigured
	}
	a := fiber.Delete(m.baseURL+"/video/v1/assets/"+assetID).
		BasicAuth(m.tokenID, m.tokenSecret).
		Timeout(m.deadline(ctx))

	code, _, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("delete asset %s: %w", assetID, errors.Join(errs...))
	}
	switch code {
	case fiber.StatusNoContent, fiber.StatusOK, fiber.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("delete asset %s: unexpected status %d", assetID, code)
	}
}

// deadline shortens the configured timeout to the context deadline, if sooner.
func (m *MuxClient) deadline(ctx context.Context) time.Duration {
	timeout := m.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout || timeout <= 0 {
			timeout = left
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}
