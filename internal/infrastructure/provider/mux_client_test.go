package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirectUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/video/v1/uploads", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)

		raw, _ := io.ReadAll(r.Body)
		var req createUploadRequest
		assert.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, []string{"public"}, req.NewAssetSettings.PlaybackPolicy)
		assert.Equal(t, "http://localhost:3000", req.CorsOrigin)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"up-1","url":"https://storage.example/upload"}}`))
	}))
	defer srv.Close()

	c := NewMuxClient(srv.URL, "id", "secret", "http://localhost:3000", 5*time.Second)
	up, err := c.CreateDirectUpload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "up-1", up.UploadID)
	assert.Equal(t, "https://storage.example/upload", up.UploadURL)
}

func TestCreateDirectUploadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewMuxClient(srv.URL, "id", "secret", "", time.Second)
	_, err := c.CreateDirectUpload(context.Background())
	assert.Error(t, err)

	_, err = NewMuxClient(srv.URL, "", "", "", time.Second).CreateDirectUpload(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDeleteAsset(t *testing.T) {
	status := http.StatusNoContent
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewMuxClient(srv.URL+"/", "id", "secret", "", time.Second)
	require.NoError(t, c.DeleteAsset(context.Background(), "asset-9"))
	assert.Equal(t, "/video/v1/assets/asset-9", gotPath)

	status = http.StatusNotFound
	assert.NoError(t, c.DeleteAsset(context.Background(), "asset-9"))

	status = http.StatusInternalServerError
	assert.Error(t, c.DeleteAsset(context.Background(), "asset-9"))
}
