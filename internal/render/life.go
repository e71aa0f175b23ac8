package render

import (
	"fmt"
	"image"

	"github.com/rook-computer/lifedesk/internal/animation"
	"github.com/rook-computer/lifedesk/internal/render/layout"
	"github.com/rook-computer/lifedesk/internal/state"
	"github.com/rook-computer/lifedesk/internal/surface"
)

const padding = 16

type LifeOptions struct {
	Theme Theme
	// StepEvery advances the world once every StepEvery frames.
	StepEvery int
	// QR, when set, is drawn in the bottom-right corner of the board.
	QR image.Image
}

// LifeDraw returns a draw function that advances the world in store at the
// configured step and draws the current snapshot.
func LifeDraw(store *state.Store, opts LifeOptions) animation.DrawFunc {
	step := opts.StepEvery
	if step <= 0 {
		step = 1
	}
	return func(ctx surface.Context, frame int) error {
		if frame%step == 0 {
			store.Tick()
		}
		DrawLife(ctx, store.Snapshot(), opts)
		return nil
	}
}

// DrawLife draws a status line and the visible part of the world.
func DrawLife(ctx surface.Context, snap state.State, opts LifeOptions) {
	theme := opts.Theme
	width, height := ctx.Size()
	ctx.Clear(theme.Background)

	textStyle := surface.TextStyle{Color: theme.Text}
	metrics := ctx.MeasureText("Lifegame", textStyle)
	status, board := layout.SplitHorizontal(image.Rect(0, 0, width, height), metrics.LineHeight+2*padding)
	status = layout.Inset(status, padding)

	ctx.DrawText(StatusLine(snap), status.Min.X, status.Min.Y, textStyle)
	if snap.Greeting != "" {
		ctx.DrawText(snap.Greeting, status.Max.X, status.Min.Y, surface.TextStyle{Color: theme.Text, Align: surface.TextAlignRight})
	}

	board = layout.Inset(board, padding)
	drawCells(ctx, board, snap, theme)

	if opts.QR != nil {
		qrSize := board.Dy() / 4
		ctx.DrawImage(opts.QR, layout.FitSquare(layout.AnchorBottomRight(board, qrSize, qrSize)))
	}
}

// StatusLine summarises a snapshot for the status bar.
func StatusLine(snap state.State) string {
	alive := 0
	if snap.World != nil {
		alive = snap.World.Alive()
	}
	return fmt.Sprintf("Lifegame  gen %d  %s  alive %d", snap.Generation, snap.Phase, alive)
}

func drawCells(ctx surface.Context, board image.Rectangle, snap state.State, theme Theme) {
	if snap.World == nil {
		return
	}
	nx, ny := snap.World.Size()
	cols := nx - snap.PanX
	rows := ny - snap.PanY
	if cols <= 0 || rows <= 0 {
		return
	}
	size := layout.CellSize(board, cols, rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if snap.World.Cell(col+snap.PanX, row+snap.PanY) {
				ctx.FillRect(layout.CellRect(board, size, col, row), theme.Foreground)
			}
		}
	}
}
