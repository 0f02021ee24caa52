package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vidhub/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveKey(t *testing.T) {
	at := time.Date(2025, 6, 21, 23, 30, 0, 0, time.FixedZone("KST", 9*3600))
	assert.Equal(t, "webhooks/2025/06/21/evt_1.json", ArchiveKey("webhooks", "evt_1", at))
}

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)

	require.NoError(t, s.Put(context.Background(), "webhooks/2025/01/02/evt.json", []byte(`{"a":1}`)))

	got, err := os.ReadFile(filepath.Join(dir, "webhooks", "2025", "01", "02", "evt.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "webhooks", "2025", "01", "02"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestNewArchive(t *testing.T) {
	ctx := context.Background()

	a, err := NewArchive(ctx, config.ArchiveConfig{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = NewArchive(ctx, config.ArchiveConfig{Driver: "local", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, a)

	_, err = NewArchive(ctx, config.ArchiveConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = NewArchive(ctx, config.ArchiveConfig{Driver: "ftp"})
	assert.Error(t, err)
}
