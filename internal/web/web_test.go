package web

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifedesk/internal/host"
	"github.com/rook-computer/lifedesk/internal/state"
)

type fixedFrames struct{ img *image.RGBA }

func (f fixedFrames) Snapshot() *image.RGBA { return f.img }

func newTestDeps(t *testing.T) APIV1Deps {
	t.Helper()
	store, err := state.NewStore(state.WorldConfig{Width: 6, Height: 3, AliveProb: 0.5}, nil)
	require.NoError(t, err)
	return APIV1Deps{
		Commands:  host.DefaultCommands(),
		Store:     store,
		Frames:    fixedFrames{img: image.NewRGBA(image.Rect(0, 0, 4, 3))},
		QRPayload: "http://127.0.0.1:8080/",
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

func TestInvokeGreet(t *testing.T) {
	mux := NewDefaultMux("", newTestDeps(t))

	rec := do(t, mux, http.MethodPost, "/api/v1/invoke/greet", `{"name":"Ada"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "Hello, Ada! You've been greeted from Go!", out.Result)
}

func TestInvokeErrors(t *testing.T) {
	mux := NewDefaultMux("", newTestDeps(t))

	rec := do(t, mux, http.MethodGet, "/api/v1/invoke/greet", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, mux, http.MethodPost, "/api/v1/invoke/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_command", decodeError(t, rec).Error)

	rec = do(t, mux, http.MethodPost, "/api/v1/invoke/greet", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_args", decodeError(t, rec).Error)

	rec = do(t, mux, http.MethodPost, "/api/v1/invoke/", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	deps := newTestDeps(t)
	deps.Commands.Register("fail", func(ctx context.Context, args json.RawMessage) (any, error) {
		return nil, errors.New("boom")
	})
	rec = do(t, NewDefaultMux("", deps), http.MethodPost, "/api/v1/invoke/fail", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", decodeError(t, rec).Message)
}

func TestStateToggleReset(t *testing.T) {
	deps := newTestDeps(t)
	mux := NewDefaultMux("", deps)

	rec := do(t, mux, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st stateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "paused", st.Phase)
	assert.Equal(t, 6, st.Width)
	assert.Equal(t, 3, st.Height)

	rec = do(t, mux, http.MethodPost, "/api/v1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, state.RUNNING, deps.Store.Phase())

	rec = do(t, mux, http.MethodPost, "/api/v1/reset", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "not_paused", decodeError(t, rec).Error)

	do(t, mux, http.MethodPost, "/api/v1/toggle", "")
	rec = do(t, mux, http.MethodPost, "/api/v1/reset", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFrameAndQR(t *testing.T) {
	mux := NewDefaultMux("", newTestDeps(t))

	rec := do(t, mux, http.MethodGet, "/api/v1/frame.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	rec = do(t, mux, http.MethodGet, "/api/v1/qr.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	empty := NewDefaultMux("", APIV1Deps{})
	assert.Equal(t, http.StatusNotImplemented, do(t, empty, http.MethodGet, "/api/v1/frame.png", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, empty, http.MethodGet, "/api/v1/qr.png", "").Code)
	assert.Equal(t, http.StatusNotImplemented, do(t, empty, http.MethodGet, "/api/v1/state", "").Code)
}

func TestEmbeddedUI(t *testing.T) {
	mux := NewDefaultMux("", APIV1Deps{})
	rec := do(t, mux, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "greet-form")

	missing := NewDefaultMux("/does/not/exist", APIV1Deps{})
	assert.Equal(t, http.StatusNotFound, do(t, missing, http.MethodGet, "/", "").Code)
}

func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewDefaultMux("", newTestDeps(t)))
	defer srv.Close()
	client := host.NewClient(srv.URL + "/")

	greeting, err := client.Greet(context.Background(), "Grace")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Grace! You've been greeted from Go!", greeting)

	err = client.Invoke(context.Background(), "missing", nil, nil)
	var remote *host.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.Status)
	assert.Equal(t, "unknown_command", remote.Code)
}

func TestHTTPServerLifecycle(t *testing.T) {
	server := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0", DevMode: true})
	server.Handler = NewDefaultMux("", newTestDeps(t))
	require.NoError(t, server.Start(context.Background()))
	assert.NotEqual(t, "127.0.0.1:0", server.Addr)

	req, err := http.NewRequest(http.MethodOptions, "http://"+server.Addr+"/api/v1/state", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	greeting, err := host.NewClient("http://"+server.Addr).Greet(context.Background(), "Linus")
	require.NoError(t, err)
	assert.Contains(t, greeting, "Linus")

	require.NoError(t, server.Stop())
	require.NoError(t, server.Stop())
	assert.Error(t, server.Start(context.Background()))
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvUIURL, "")
	cfg, err := DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: ":8080"}, cfg)

	t.Setenv(EnvListenAddr, ":9000")
	t.Setenv(EnvDevMode, "true")
	t.Setenv(EnvUIURL, "http://lifedesk.local/")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: ":9000", DevMode: true, UIURL: "http://lifedesk.local/"}, cfg)

	t.Setenv(EnvDevMode, "maybe")
	_, err = DefaultServerConfigFromEnv(":8080")
	assert.Error(t, err)

	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvListenAddr, "9000")
	_, err = DefaultServerConfigFromEnv(":8080")
	assert.Error(t, err)
}

func TestDevCORS(t *testing.T) {
	handler := WithDevCORS(NewDefaultMux("", newTestDeps(t)))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
