package web

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/rook-computer/lifedesk/internal/host"
	"github.com/rook-computer/lifedesk/internal/render"
	"github.com/rook-computer/lifedesk/internal/state"
)

const maxArgsBytes = 1 << 20

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type invokeResponse struct {
	Result any `json:"result"`
}

type stateResponse struct {
	Phase      string `json:"phase"`
	Generation uint64 `json:"generation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Alive      int    `json:"alive"`
	PanX       int    `json:"panX"`
	PanY       int    `json:"panY"`
	Greeting   string `json:"greeting"`
}

// FrameSource provides the last presented frame.
type FrameSource interface {
	Snapshot() *image.RGBA
}

type APIV1Deps struct {
	Commands *host.Commands
	Store    *state.Store
	Frames   FrameSource
	// QRPayload is encoded by GET /qr.png, usually the UI URL.
	QRPayload string
}

func apiV1Router(deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/invoke/", func(w http.ResponseWriter, r *http.Request) { handleInvoke(w, r, deps) })
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/toggle", func(w http.ResponseWriter, r *http.Request) { handleToggle(w, r, deps) })
	mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) { handleReset(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQR(w, r, deps) })
	return mux
}

func handleInvoke(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Commands == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "commands not configured")
		return
	}
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/invoke/"), "/")
	if name == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_command", "command name required")
		return
	}
	args, err := io.ReadAll(io.LimitReader(r.Body, maxArgsBytes))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	result, err := deps.Commands.Invoke(r.Context(), name, json.RawMessage(args))
	switch {
	case errors.Is(err, host.ErrUnknownCommand):
		writeAPIError(w, http.StatusNotFound, "unknown_command", err.Error())
	case errors.Is(err, host.ErrInvalidArgs):
		writeAPIError(w, http.StatusBadRequest, "invalid_args", err.Error())
	case err != nil:
		writeAPIError(w, http.StatusInternalServerError, "command_failed", err.Error())
	default:
		writeJSON(w, http.StatusOK, invokeResponse{Result: result})
	}
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	writeJSON(w, http.StatusOK, toStateResponse(deps.Store.Snapshot()))
}

func handleToggle(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	deps.Store.Toggle()
	writeJSON(w, http.StatusOK, toStateResponse(deps.Store.Snapshot()))
}

func handleReset(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	ok, err := deps.Store.Reset()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "reset_failed", err.Error())
		return
	}
	if !ok {
		writeAPIError(w, http.StatusConflict, "not_paused", "pause before resetting")
		return
	}
	writeJSON(w, http.StatusOK, toStateResponse(deps.Store.Snapshot()))
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Frames == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no frame source")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_ = png.Encode(w, deps.Frames.Snapshot())
}

func handleQR(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.QRPayload == "" {
		writeAPIError(w, http.StatusNotFound, "no_payload", "no QR payload configured")
		return
	}
	data, err := render.QRCode{Payload: deps.QRPayload, Theme: render.ScanTheme, Border: true}.PNG()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func toStateResponse(snap state.State) stateResponse {
	resp := stateResponse{
		Phase:      snap.Phase.String(),
		Generation: snap.Generation,
		PanX:       snap.PanX,
		PanY:       snap.PanY,
		Greeting:   snap.Greeting,
	}
	if snap.World != nil {
		resp.Width, resp.Height = snap.World.Size()
		resp.Alive = snap.World.Alive()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
