package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
	"github.com/svg-loader/backend/internal/session"
)

func newTestSessions() *session.Manager {
	logger := log.New("test")
	logger.SetOutput(io.Discard)
	return session.NewManager(0, logger)
}

func newTestServer(t *testing.T, strict bool) (*echo.Echo, *session.Manager) {
	t.Helper()
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	SetupMiddleware(e)

	sessions := newTestSessions()
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Sessions:         sessions,
		Presets:          preset.Builtin(),
		Version:          "test",
		StrictValidation: strict,
		MaxShapes:        10,
		CacheMaxAge:      60,
	}))
	return e, sessions
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler("1.2.3", newTestSessions())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if assert.NoError(t, h.HandleHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
		assert.Contains(t, rec.Body.String(), `"instances":0`)
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(NewNotFoundError("preset", "x"), c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), c)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(errors.New("disk on fire"), c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk on fire")

	ShowErrorDetails = false
	defer func() { ShowErrorDetails = true }()
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(errors.New("disk on fire"), c)
	assert.Contains(t, rec.Body.String(), `"code":"UNKNOWN_ERROR"`)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	e, _ := newTestServer(t, false)
	rec := doJSON(e, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) models.InstanceState {
	t.Helper()
	var st models.InstanceState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}
