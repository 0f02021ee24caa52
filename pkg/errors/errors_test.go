package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"vidhub/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCodeOfAndIs(t *testing.T) {
	cause := stderrors.New("db down")
	err := fmt.Errorf("wrapped: %w", ErrInternal(cause))

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.True(t, Is(err, CodeInternal))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")))
	assert.False(t, Is(nil, CodeInternal))
	assert.True(t, Is(ErrNotFound(nil), CodeNotFound))
}

func TestStatusFor(t *testing.T) {
	cases := map[string]int{
		CodeInvalidSignature:     403,
		CodeMissingConfiguration: 500,
		CodeNotFound:             404,
		CodeBadRequest:           400,
		CodeUnauthorized:         401,
		CodeForbidden:            403,
		CodeConflict:             500,
		CodeInternal:             500,
	}
	for code, status := range cases {
		assert.Equal(t, status, StatusFor(code), code)
	}
}

func TestHandleError(t *testing.T) {
	require.NoError(t, i18n.Load("en"))
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler(zap.NewNop())})
	app.Get("/missing", func(c *fiber.Ctx) error { return ErrNotFound(stderrors.New("no row")) })
	app.Get("/plain", func(c *fiber.Ctx) error { return stderrors.New("secret detail") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 404, resp.StatusCode)
	assert.JSONEq(t, `{"error":"not_found","message":"Video not found"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, 500, resp.StatusCode)
	assert.NotContains(t, string(body), "secret detail")

	resp, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestLocalizedMessages(t *testing.T) {
	require.NoError(t, i18n.Load("ko"))
	t.Cleanup(func() { _ = i18n.Load("en") })
	assert.Equal(t, "잘못된 요청", i18n.T(CodeBadRequest, "Bad request"))
	assert.Error(t, i18n.Load("xx"))
}
