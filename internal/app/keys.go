package app

import (
	"context"
	"encoding/json"

	"github.com/rook-computer/lifedesk/internal/host"
	"github.com/rook-computer/lifedesk/internal/input"
	"github.com/rook-computer/lifedesk/internal/state"
)

// HandleAction applies a user action to the store.
func (app *App) HandleAction(action input.Action) {
	switch action {
	case input.Quit:
		app.Store.Quit()
		app.Exit(nil)
	case input.Toggle:
		app.Store.Toggle()
	case input.Reset:
		if _, err := app.Store.Reset(); err != nil {
			app.Logger.Errorf("input", "reset failed: %v", err)
		}
	case input.PanLeft:
		app.Store.PanX(-1)
	case input.PanRight:
		app.Store.PanX(1)
	case input.PanUp:
		app.Store.PanY(-1)
	case input.PanDown:
		app.Store.PanY(1)
	default:
		app.Logger.Infof("input", "ignoring action %q", action)
	}
}

// Commands returns the host commands served to the UI. The greet result is
// also shown in the status line.
func Commands(store *state.Store) *host.Commands {
	commands := host.DefaultCommands()
	commands.Register(host.GreetCommand, func(ctx context.Context, args json.RawMessage) (any, error) {
		result, err := host.Greet(ctx, args)
		if err != nil {
			return nil, err
		}
		if greeting, ok := result.(string); ok {
			store.SetGreeting(greeting)
		}
		return result, nil
	})
	return commands
}
