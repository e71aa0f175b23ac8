package state

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/rook-computer/lifedesk/internal/life"
)

type Phase int

const (
	PAUSED Phase = iota
	RUNNING
	QUIT
)

func (p Phase) String() string {
	switch p {
	case PAUSED:
		return "paused"
	case RUNNING:
		return "running"
	case QUIT:
		return "quit"
	default:
		return "unknown"
	}
}

// WorldConfig describes the worlds created on start and on reset.
type WorldConfig struct {
	Width     int
	Height    int
	AliveProb float64
}

var DefaultWorld = WorldConfig{Width: 120, Height: 60, AliveProb: 0.2}

type State struct {
	Phase      Phase
	Generation uint64
	// World is a private copy; callers may read it freely.
	World    *life.World
	PanX     int
	PanY     int
	Greeting string
}

type Store struct {
	mu    sync.RWMutex
	cfg   WorldConfig
	rng   *rand.Rand
	state State
}

// NewStore creates a paused store with a random world. A nil rng uses a
// randomly seeded generator.
func NewStore(cfg WorldConfig, rng *rand.Rand) (*Store, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	world, err := life.Random(cfg.Width, cfg.Height, cfg.AliveProb, rng)
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, rng: rng, state: State{Phase: PAUSED, World: world}}, nil
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.state
	snap.World = store.state.World.Clone()
	return snap
}

func (store *Store) Phase() Phase {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state.Phase
}

// Tick advances the world one generation while running and reports whether it did.
func (store *Store) Tick() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.state.Phase != RUNNING {
		return false
	}
	if store.state.Generation < math.MaxUint64 {
		store.state.Generation++
	}
	store.state.World.Next()
	return true
}

// Toggle switches between running and paused. It does nothing after Quit.
func (store *Store) Toggle() {
	store.mu.Lock()
	switch store.state.Phase {
	case PAUSED:
		store.state.Phase = RUNNING
	case RUNNING:
		store.state.Phase = PAUSED
	}
	store.mu.Unlock()
}

// Reset replaces the world with a new random one. Only a paused store is
// reset; the return value reports whether it happened.
func (store *Store) Reset() (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.state.Phase != PAUSED {
		return false, nil
	}
	world, err := life.Random(store.cfg.Width, store.cfg.Height, store.cfg.AliveProb, store.rng)
	if err != nil {
		return false, err
	}
	store.state.World = world
	store.state.Generation = 0
	store.state.PanX = 0
	store.state.PanY = 0
	return true, nil
}

// PanX moves the rendering offset along the x axis, clamped to [0, width].
func (store *Store) PanX(shift int) {
	store.mu.Lock()
	store.state.PanX = panned(store.state.PanX, shift, store.cfg.Width)
	store.mu.Unlock()
}

// PanY moves the rendering offset along the y axis, clamped to [0, height].
func (store *Store) PanY(shift int) {
	store.mu.Lock()
	store.state.PanY = panned(store.state.PanY, shift, store.cfg.Height)
	store.mu.Unlock()
}

func panned(current, shift, upper int) int {
	next := current + shift
	if next < 0 {
		return 0
	}
	if next > upper {
		return upper
	}
	return next
}

func (store *Store) Quit() {
	store.mu.Lock()
	store.state.Phase = QUIT
	store.mu.Unlock()
}

func (store *Store) SetGreeting(greeting string) {
	store.mu.Lock()
	store.state.Greeting = greeting
	store.mu.Unlock()
}
