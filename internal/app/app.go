package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/lifedesk/internal/animation"
	"github.com/rook-computer/lifedesk/internal/input"
	"github.com/rook-computer/lifedesk/internal/render"
	"github.com/rook-computer/lifedesk/internal/state"
	"github.com/rook-computer/lifedesk/internal/surface"
	"github.com/rook-computer/lifedesk/internal/web"
)

// Console switches the display between the app and the text console.
type Console interface {
	EnterGraphics() error
	Restore() error
}

type App struct {
	Store   *state.Store
	Clock   *animation.FrameClock
	Surface surface.Surface
	Web     web.Server
	Input   input.Source
	Console Console
	Logger  Logger
	Options render.LifeOptions

	loop *animation.Loop
	draw *animation.Draw

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, clock *animation.FrameClock, surf surface.Surface, webServer web.Server, in input.Source) *App {
	return &App{Store: store, Clock: clock, Surface: surf, Web: webServer, Input: in, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Only the first call has an effect.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the app until ctx is done, Exit is called or the user quits.
// It returns the error that ended the run; a user quit returns nil.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Store == nil || app.Clock == nil {
		return errors.New("app: store and clock are required")
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("app", "web start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	if app.Console != nil {
		_ = app.Console.EnterGraphics()
		defer func() { _ = app.Console.Restore() }()
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	app.loop = animation.New(app.Clock,
		animation.WithLogger(app.Logger),
		animation.WithErrorHandler(func(err error) {
			app.Logger.Errorf("app", "animation stopped: %v", err)
			app.Exit(err)
		}),
	)
	app.draw = animation.NewDraw(render.LifeDraw(app.Store, app.Options))
	app.Clock.Post(func() { app.mount(app.Surface, true) })

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = app.Clock.Run(runCtx)
	}()

	if app.Input != nil {
		if err := app.Input.Start(runCtx); err != nil {
			app.Logger.Errorf("app", "input start error: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.pumpInput(runCtx)
			}()
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	if app.Input != nil {
		_ = app.Input.Stop()
	}
	wg.Wait()

	// The clock has stopped; tear the loop down on this goroutine.
	app.loop.Unmount()
	return err
}

// SetSurface swaps the surface the animation draws on. The running
// activation is torn down and a new one started against s. A nil surface
// stops drawing until another one is set.
func (app *App) SetSurface(s surface.Surface) {
	app.Clock.Post(func() { app.mount(s, false) })
}

// mount attaches s and commits the loop. It runs on the clock goroutine.
// Any failure of the first mount ends the app; later a nil surface only
// leaves the animation idle.
func (app *App) mount(s surface.Surface, first bool) {
	app.Surface = s
	ref := app.loop.Render(app.draw)
	if s == nil {
		ref.Detach()
	} else {
		ref.Attach(s)
	}
	err := app.loop.Commit()
	switch {
	case err == nil:
	case errors.Is(err, animation.ErrUnmounted):
	case !first && s == nil && errors.Is(err, surface.ErrSurfaceUnavailable):
		app.Logger.Infof("app", "surface detached, animation idle")
	default:
		app.Logger.Errorf("app", "animation start failed: %v", err)
		app.Exit(fmt.Errorf("start animation: %w", err))
	}
}

func (app *App) pumpInput(ctx context.Context) {
	events := app.Input.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-events:
			if !ok {
				return
			}
			app.Clock.Post(func() { app.HandleAction(action) })
		}
	}
}
