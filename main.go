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
	"github.com/rook-computer/lifedesk/internal/system"
	"github.com/rook-computer/lifedesk/internal/web"
)

func main() {
	fmt.Println("lifedesk starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./lifedesk-debug.log")
	configPath := flag.String("config", "", "optional TOML config file")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+system.EnvStdIOLog)
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	uiURL := flag.String("ui-url", defaults.UIURL, "URL of the web UI, encoded in the on-screen QR code; also configurable via "+web.EnvUIURL)
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if err := system.RedirectStdIO(system.StdIOLogPath(*stdioLog)); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./lifedesk-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := state.NewStore(cfg.WorldConfig(), nil)
	if err != nil {
		fmt.Println("world error:", err)
		os.Exit(2)
	}

	face := surface.LoadFace(assets.FontTTF, cfg.Display.FontSize, logger)
	fbSurface, err := surface.OpenFramebuffer(cfg.Display.Framebuffer, cfg.Display.Width, cfg.Display.Height, face, logger)
	if err != nil {
		fmt.Println("framebuffer error:", err)
		os.Exit(1)
	}
	defer fbSurface.Close()

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	server.Handler = web.NewDefaultMux(*staticDir, web.APIV1Deps{
		Commands:  app.Commands(store),
		Store:     store,
		Frames:    fbSurface,
		QRPayload: *uiURL,
	})

	opts := render.LifeOptions{Theme: theme, StepEvery: cfg.Display.StepEvery}
	if cfg.Display.ShowQR {
		qr, err := render.QRCode{Payload: *uiURL, SizePx: 192, Theme: theme}.Image()
		if err != nil {
			logger.Errorf("main", "qr code: %v", err)
		}
		opts.QR = qr
	}

	var keys input.Source = input.NewKeyboard(logger)
	a := app.New(store, animation.NewFrameClock(cfg.Display.RefreshRate), fbSurface, server, keys)
	a.Logger = logger
	a.Options = opts
	a.Console = system.NewConsole(logger)

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	fmt.Println("lifedesk stopped")
}
