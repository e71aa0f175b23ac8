// Package life implements Conway's Game of Life on a bounded grid.
// Cells outside the grid count as dead.
package life

import (
	"errors"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

var ErrInvalidSize = errors.New("life: invalid cell size")

type World struct {
	nx, ny int
	cells  *bitset.BitSet
}

// New creates a world of nx*ny cells laid out row by row.
func New(nx, ny int, cells []bool) (*World, error) {
	if nx < 0 || ny < 0 || len(cells) != nx*ny {
		return nil, ErrInvalidSize
	}
	w := &World{nx: nx, ny: ny, cells: bitset.New(uint(nx * ny))}
	for i, alive := range cells {
		if alive {
			w.cells.Set(uint(i))
		}
	}
	return w, nil
}

// Random creates a world where each cell is alive with probability aliveProb.
func Random(nx, ny int, aliveProb float64, rng *rand.Rand) (*World, error) {
	if nx < 0 || ny < 0 {
		return nil, ErrInvalidSize
	}
	cells := make([]bool, nx*ny)
	for i := range cells {
		cells[i] = rng.Float64() < aliveProb
	}
	return New(nx, ny, cells)
}

func (w *World) Size() (nx, ny int) { return w.nx, w.ny }

func (w *World) index(ix, iy int) uint { return uint(iy*w.nx + ix) }

// Cell reports whether the cell at (ix, iy) is alive. Out of range cells are dead.
func (w *World) Cell(ix, iy int) bool {
	if ix < 0 || iy < 0 || ix >= w.nx || iy >= w.ny {
		return false
	}
	return w.cells.Test(w.index(ix, iy))
}

// Alive returns the number of live cells.
func (w *World) Alive() int { return int(w.cells.Count()) }

// Next advances the world one generation: a dead cell with exactly three
// live neighbours is born, a live cell with two or three survives.
func (w *World) Next() {
	next := bitset.New(uint(w.nx * w.ny))
	for iy := 0; iy < w.ny; iy++ {
		for ix := 0; ix < w.nx; ix++ {
			n := w.neighbours(ix, iy)
			if n == 3 || (n == 2 && w.Cell(ix, iy)) {
				next.Set(w.index(ix, iy))
			}
		}
	}
	w.cells = next
}

func (w *World) neighbours(ix, iy int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && w.Cell(ix+dx, iy+dy) {
				count++
			}
		}
	}
	return count
}

// Equal reports whether both worlds have the same size and cells.
func (w *World) Equal(other *World) bool {
	return w.nx == other.nx && w.ny == other.ny && w.cells.Equal(other.cells)
}

// Clone returns an independent copy of w.
func (w *World) Clone() *World {
	return &World{nx: w.nx, ny: w.ny, cells: w.cells.Clone()}
}
