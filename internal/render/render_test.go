package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/lifedesk/internal/life"
	"github.com/rook-computer/lifedesk/internal/state"
	"github.com/rook-computer/lifedesk/internal/surface"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#9000ff")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme.Foreground, c)

	c, err = ParseHexColor("ffdc00")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme.Background, c)

	_, err = ParseHexColor("#fff")
	assert.Error(t, err)
	_, err = ParseHexColor("zzzzzz")
	assert.Error(t, err)
}

func TestDrawLifeFillsLiveCells(t *testing.T) {
	world, err := life.New(2, 1, []bool{true, false})
	require.NoError(t, err)
	canvas := surface.NewCanvas(200, 200, nil)
	ctx, err := canvas.Context(surface.Context2D)
	require.NoError(t, err)

	DrawLife(ctx, state.State{World: world}, LifeOptions{Theme: DefaultTheme})
	require.NoError(t, ctx.Present())
	snap := canvas.Snapshot()

	// The board starts below the status line; sample the bottom rows of each cell.
	m := ctx.MeasureText("Lifegame", surface.TextStyle{})
	top := m.LineHeight + 2*padding + padding
	size := (200 - 2*padding) / 2
	live := snap.RGBAAt(padding+size/2, top+size/2)
	dead := snap.RGBAAt(padding+size+size/2, top+size/2)
	assert.Equal(t, DefaultTheme.Foreground, live)
	assert.Equal(t, DefaultTheme.Background, dead)
	assert.Equal(t, DefaultTheme.Background, snap.RGBAAt(199, 199))
}

func TestLifeDrawSteps(t *testing.T) {
	store, err := state.NewStore(state.WorldConfig{Width: 4, Height: 4, AliveProb: 0.5}, nil)
	require.NoError(t, err)
	store.Toggle()
	draw := LifeDraw(store, LifeOptions{Theme: DefaultTheme, StepEvery: 2})
	ctx, err := surface.NewCanvas(64, 64, nil).Context(surface.Context2D)
	require.NoError(t, err)

	for frame := 1; frame <= 5; frame++ {
		require.NoError(t, draw(ctx, frame))
	}
	assert.Equal(t, uint64(2), store.Snapshot().Generation)
}

func TestStatusLine(t *testing.T) {
	world, err := life.New(1, 1, []bool{true})
	require.NoError(t, err)
	line := StatusLine(state.State{Phase: state.RUNNING, Generation: 7, World: world})
	assert.Equal(t, "Lifegame  gen 7  running  alive 1", line)
}

func TestQRCode(t *testing.T) {
	img, err := QRCode{}.Image()
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = QRCode{Payload: "http://127.0.0.1:8080/", Theme: DefaultTheme}.Image()
	require.NoError(t, err)
	assert.Equal(t, defaultQRCodeSizePx, img.Bounds().Dx())

	png, err := QRCode{Payload: "http://127.0.0.1:8080/", SizePx: 64, Theme: ScanTheme, Border: true}.PNG()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
