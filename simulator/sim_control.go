package main

import (
	"encoding/json"
	"image"
	"net/http"
	"strconv"
	"sync/atomic"

	"golang.org/x/image/font"

	"github.com/rook-computer/lifedesk/internal/app"
	"github.com/rook-computer/lifedesk/internal/surface"
)

// canvasHolder tracks the canvas currently attached to the app so the frame
// endpoint keeps serving after a resize.
type canvasHolder struct {
	current atomic.Pointer[surface.Canvas]
}

func (h *canvasHolder) Set(c *surface.Canvas) { h.current.Store(c) }
func (h *canvasHolder) Get() *surface.Canvas  { return h.current.Load() }
func (h *canvasHolder) Snapshot() *image.RGBA { return h.Get().Snapshot() }

type SimControl struct {
	App      *app.App
	Canvases *canvasHolder
	Face     font.Face

	attached atomic.Bool
}

type simStatus struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Presented uint64 `json:"presented"`
	Attached  bool   `json:"attached"`
}

func (c *SimControl) status() simStatus {
	canvas := c.Canvases.Get()
	b := canvas.Bounds()
	return simStatus{Width: b.Dx(), Height: b.Dy(), Presented: canvas.Presented(), Attached: c.attached.Load()}
}

// Resize replaces the canvas with a new one of the given size. The animation
// restarts on the new canvas.
func (c *SimControl) Resize(width, height int) {
	canvas := surface.NewCanvas(width, height, c.Face)
	c.Canvases.Set(canvas)
	c.attached.Store(true)
	c.App.SetSurface(canvas)
}

func (c *SimControl) Detach() {
	c.attached.Store(false)
	c.App.SetSurface(nil)
}

func (c *SimControl) Attach() {
	c.attached.Store(true)
	c.App.SetSurface(c.Canvases.Get())
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	control.attached.Store(true)

	mux.HandleFunc("/sim/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/resize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		width, werr := strconv.Atoi(r.URL.Query().Get("width"))
		height, herr := strconv.Atoi(r.URL.Query().Get("height"))
		if werr != nil || herr != nil || width <= 0 || height <= 0 || width > 8192 || height > 8192 {
			writeSimError(w, http.StatusBadRequest, "width and height must be integers in [1, 8192]")
			return
		}
		control.Resize(width, height)
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "width": width, "height": height})
	})

	mux.HandleFunc("/sim/detach", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Detach()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/attach", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Attach()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
