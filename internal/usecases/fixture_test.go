package usecases

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/internal/infrastructure/cache"
	memrepo "vidhub/internal/infrastructure/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "whsec_test"
	testPlayback  = "https://stream.example"
	testThumbnail = "https://image.example"
)

var errBoom = stderrors.New("boom")

type fixture struct {
	store    *memrepo.InMemoryStore
	videos   repositories.VideoRepository
	likes    repositories.LikeRepository
	users    repositories.UserRepository
	comments repositories.CommentRepository
	pending  *cache.MemoryPendingStore
	owner    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memrepo.NewInMemoryStore()
	return &fixture{
		store:    store,
		videos:   store.Videos(),
		likes:    store.Likes(),
		users:    store.Users(),
		comments: store.Comments(),
		pending:  cache.NewMemoryPendingStore(),
		owner:    uuid.New(),
	}
}

func (f *fixture) register(t *testing.T, handle string) *entities.Video {
	t.Helper()
	v, err := NewRegistrationService(f.videos).Register(context.Background(), f.owner, handle, "clip "+handle, "")
	require.NoError(t, err)
	return v
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entities.Video {
	t.Helper()
	v, err := f.videos.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func testWebhookConfig() WebhookConfig {
	return WebhookConfig{
		Secret:           testSecret,
		Tolerance:        5 * time.Minute,
		PlaybackBaseURL:  testPlayback,
		ThumbnailBaseURL: testThumbnail,
		ArchivePrefix:    "webhooks",
	}
}

func assetReadyBody(handle string, duration float64) []byte {
	return []byte(`{"id":"evt-` + handle + `","type":"video.asset.ready","data":{"id":"asset-` + handle +
		`","upload_id":"` + handle + `","status":"ready","duration":` + formatFloat(duration) +
		`,"playback_ids":[{"id":"pb-` + handle + `","policy":"public"}]}}`)
}

func parsedReady(t *testing.T, handle string) dto.AssetReadyData {
	t.Helper()
	var ev dto.WebhookEvent
	require.NoError(t, json.Unmarshal(assetReadyBody(handle, 125), &ev))
	var data dto.AssetReadyData
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	return data
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// failingVideos fails the write paths used by coordinators.
type failingVideos struct {
	repositories.VideoRepository
}

func (failingVideos) MarkReady(context.Context, string, entities.ReadyTransition) (bool, error) {
	return false, errBoom
}

func (failingVideos) IncrementViewCount(context.Context, uuid.UUID) error {
	return errBoom
}

type failingCache struct{}

func (failingCache) Seen(context.Context, string) (bool, error)        { return false, errBoom }
func (failingCache) Mark(context.Context, string, time.Duration) error { return errBoom }

type memArchive struct {
	mu   sync.Mutex
	err  error
	puts map[string][]byte
}

func (a *memArchive) Put(_ context.Context, key string, body []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	if a.puts == nil {
		a.puts = make(map[string][]byte)
	}
	a.puts[key] = append([]byte(nil), body...)
	return nil
}

type fakeProvider struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
}

func (p *fakeProvider) CreateDirectUpload(context.Context) (*dto.DirectUpload, error) {
	return &dto.DirectUpload{UploadURL: "https://storage.example/up", UploadID: "up-new"}, nil
}

func (p *fakeProvider) DeleteAsset(_ context.Context, assetID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deleted = append(p.deleted, assetID)
	return nil
}
