// Package host implements the named commands the shell can invoke on its
// host process, and a client that invokes them over HTTP.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownCommand = errors.New("host: unknown command")
	ErrInvalidArgs    = errors.New("host: invalid arguments")
)

// Handler runs one command. args is the raw JSON argument object and may be empty.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Commands struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewCommands() *Commands {
	return &Commands{handlers: make(map[string]Handler)}
}

// DefaultCommands returns a registry with the greet command.
func DefaultCommands() *Commands {
	c := NewCommands()
	c.Register(GreetCommand, Greet)
	return c
}

// Register adds or replaces the handler for name.
func (c *Commands) Register(name string, handler Handler) {
	c.mu.Lock()
	c.handlers[name] = handler
	c.mu.Unlock()
}

func (c *Commands) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command.
func (c *Commands) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	c.mu.RLock()
	handler, ok := c.handlers[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return handler(ctx, args)
}

// decodeArgs unmarshals args into v. Empty args leave v untouched.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return nil
}
