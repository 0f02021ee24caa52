package usecases

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/internal/infrastructure/storage"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/errors"
	"vidhub/pkg/helper"
	"vidhub/pkg/signature"
)

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	// OutcomeReplay means the video was already ready.
	OutcomeReplay  Outcome = "replay"
	OutcomeIgnored Outcome = "ignored"
	// OutcomeParked means no video matched the upload handle yet.
	OutcomeParked Outcome = "parked"
)

// IngestResult carries side-channel facts for the caller to observe.
type IngestResult struct {
	Outcome   Outcome
	EventType string
	// ArchiveErr is set when the body verified but could not be archived.
	ArchiveErr error
	// DecodeErr is set when a verified body was acknowledged without being understood.
	DecodeErr error
}

type WebhookIngestor interface {
	Ingest(ctx context.Context, body []byte, signatureHeader string) (*IngestResult, error)
	// ApplyReady runs the ready transition for an already-authenticated event.
	ApplyReady(ctx context.Context, data dto.AssetReadyData) (Outcome, error)
}

type WebhookConfig struct {
	Secret           string
	Tolerance        time.Duration
	PlaybackBaseURL  string
	ThumbnailBaseURL string
	ArchivePrefix    string
}

type webhookIngestor struct {
	cfg     WebhookConfig
	videos  repositories.VideoRepository
	pending repositories.PendingStore
	archive repositories.PayloadArchive
	now     func() time.Time
}

// NewWebhookIngestor builds the ingestor. pending and archive may be nil.
func NewWebhookIngestor(cfg WebhookConfig, videos repositories.VideoRepository, pending repositories.PendingStore, archive repositories.PayloadArchive) WebhookIngestor {
	return &webhookIngestor{
		cfg:     cfg,
		videos:  videos,
		pending: pending,
		archive: archive,
		now:     time.Now,
	}
}

func (w *webhookIngestor) Ingest(ctx context.Context, body []byte, signatureHeader string) (*IngestResult, error) {
	if _, err := signature.Parse(signatureHeader); err != nil {
		return nil, errors.ErrInvalidSignature(err)
	}
	if w.cfg.Secret == "" {
		return nil, errors.ErrMissingConfiguration(signature.ErrNoSecret)
	}
	verifier := signature.Verifier{Secret: w.cfg.Secret, Tolerance: w.cfg.Tolerance, Now: w.now}
	if err := verifier.Verify(body, signatureHeader); err != nil {
		return nil, errors.ErrInvalidSignature(err)
	}

	// Undecodable verified bodies are acked so the provider stops redelivering them.
	var ev dto.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return &IngestResult{Outcome: OutcomeIgnored, DecodeErr: fmt.Errorf("decode event: %w", err)}, nil
	}
	res := &IngestResult{EventType: ev.Type}

	if w.archive != nil {
		key := storage.ArchiveKey(w.cfg.ArchivePrefix, ev.ID, w.now())
		res.ArchiveErr = w.archive.Put(ctx, key, body)
	}

	if ev.Type != consts.EventAssetReady {
		res.Outcome = OutcomeIgnored
		return res, nil
	}

	var data dto.AssetReadyData
	if err := json.Unmarshal(ev.Data, &data); err != nil {
		res.Outcome = OutcomeIgnored
		res.DecodeErr = fmt.Errorf("decode asset data: %w", err)
		return res, nil
	}
	if data.UploadID == "" || playbackRef(data) == "" {
		res.Outcome = OutcomeIgnored
		return res, nil
	}

	outcome, err := w.ApplyReady(ctx, data)
	if err != nil {
		return nil, err
	}
	if outcome == OutcomeParked && w.pending != nil {
		parked := repositories.ParkedEvent{UploadHandle: data.UploadID, Data: data, ParkedAt: w.now().UTC()}
		if err := w.pending.Park(ctx, parked); err != nil {
			return nil, errors.ErrInternal(fmt.Errorf("park event: %w", err))
		}
	}
	res.Outcome = outcome
	return res, nil
}

// ApplyReady transitions every processing row registered under the upload
// handle. Rows already ready are left untouched.
func (w *webhookIngestor) ApplyReady(ctx context.Context, data dto.AssetReadyData) (Outcome, error) {
	changed, err := w.videos.MarkReady(ctx, data.UploadID, w.transition(data))
	if err != nil {
		return "", errors.ErrInternal(err)
	}
	if changed {
		return OutcomeApplied, nil
	}

	_, err = w.videos.GetByUploadHandle(ctx, data.UploadID)
	if stderrors.Is(err, repositories.ErrVideoNotFound) {
		return OutcomeParked, nil
	}
	if err != nil {
		return "", errors.ErrInternal(err)
	}
	return OutcomeReplay, nil
}

func (w *webhookIngestor) transition(data dto.AssetReadyData) entities.ReadyTransition {
	ref := playbackRef(data)
	return entities.ReadyTransition{
		AssetID:            data.ID,
		PlaybackReference:  PlaybackURL(w.cfg.PlaybackBaseURL, ref),
		ThumbnailReference: ThumbnailURL(w.cfg.ThumbnailBaseURL, ref),
		Duration:           helper.FormatDuration(data.Duration),
	}
}

// playbackRef prefers the first public playback id, falling back to the asset id.
func playbackRef(data dto.AssetReadyData) string {
	if len(data.PlaybackIDs) > 0 && data.PlaybackIDs[0].ID != "" {
		return data.PlaybackIDs[0].ID
	}
	return data.ID
}

func PlaybackURL(base, ref string) string {
	return strings.TrimRight(base, "/") + "/" + ref + ".m3u8"
}

func ThumbnailURL(base, ref string) string {
	return strings.TrimRight(base, "/") + "/" + ref + "/thumbnail.jpg"
}
