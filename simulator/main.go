package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/lifedesk/internal/animation"
	"github.com/rook-computer/lifedesk/internal/app"
	"github.com/rook-computer/lifedesk/internal/assets"
	"github.com/rook-computer/lifedesk/internal/input"
	"github.com/rook-computer/lifedesk/internal/render"
	"github.com/rook-computer/lifedesk/internal/state"
	"github.com/rook-computer/lifedesk/internal/surface"
	"github.com/rook-computer/lifedesk/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	configPath := flag.String("config", "", "optional TOML config file")
	width := flag.Int("width", 960, "offscreen canvas width")
	height := flag.Int("height", 540, "offscreen canvas height")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	theme, err := cfg.RenderTheme()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := state.NewStore(cfg.WorldConfig(), nil)
	if err != nil {
		fmt.Println("world error:", err)
		os.Exit(2)
	}

	face := surface.LoadFace(assets.FontTTF, cfg.Display.FontSize/2, logger)
	canvases := &canvasHolder{}
	canvases.Set(surface.NewCanvas(*width, *height, face))

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	mux := web.NewDefaultMux(*staticDir, web.APIV1Deps{
		Commands: app.Commands(store),
		Store:    store,
		Frames:   canvases,
		// The simulator has no fixed hostname; point the code at itself.
		QRPayload: uiURL(defaults.UIURL, *listenAddr),
	})

	a := app.New(store, animation.NewFrameClock(cfg.Display.RefreshRate), canvases.Get(), server, input.NewNoopSource())
	a.Logger = logger
	a.Options = render.LifeOptions{Theme: theme, StepEvery: cfg.Display.StepEvery}

	registerSimEndpoints(mux, &SimControl{App: a, Canvases: canvases, Face: face})
	server.Handler = mux

	fmt.Println("lifedesk simulator listening on", displayAddr(*listenAddr))
	fmt.Println("Canvas:", *width, "x", *height)

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func uiURL(configured, listenAddr string) string {
	if configured != "" {
		return configured
	}
	return displayAddr(listenAddr)
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "http://127.0.0.1" + addr + "/"
	}
	if addr == "" {
		return "http://127.0.0.1:8080/"
	}
	return "http://" + addr + "/"
}
