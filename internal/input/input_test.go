package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMapper(t *testing.T) {
	tests := []struct {
		code   uint16
		value  int32
		action Action
		ok     bool
	}{
		{keyQ, keyPressed, Quit, true},
		{keyEsc, keyPressed, Quit, true},
		{keyS, keyPressed, Toggle, true},
		{keyR, keyPressed, Reset, true},
		{keyLeft, keyRepeated, PanLeft, true},
		{keyRight, keyPressed, PanRight, true},
		{keyUp, keyPressed, PanUp, true},
		{keyDown, keyPressed, PanDown, true},
		{keyS, keyReleased, "", false},
		{keyC, keyPressed, "", false},
		{200, keyPressed, "", false},
	}
	for _, tt := range tests {
		var m keyMapper
		action, ok := m.translate(tt.code, tt.value)
		assert.Equal(t, tt.ok, ok, "code %d", tt.code)
		assert.Equal(t, tt.action, action, "code %d", tt.code)
	}
}

func TestKeyMapperCtrlC(t *testing.T) {
	var m keyMapper
	_, ok := m.translate(keyLeftCtrl, keyPressed)
	assert.False(t, ok)

	action, ok := m.translate(keyC, keyPressed)
	assert.True(t, ok)
	assert.Equal(t, Quit, action)

	m.translate(keyLeftCtrl, keyReleased)
	_, ok = m.translate(keyC, keyPressed)
	assert.False(t, ok)
}

func TestNoopSourceStopTwice(t *testing.T) {
	src := NewNoopSource()
	assert.NoError(t, src.Start(context.Background()))
	assert.NoError(t, src.Stop())
	assert.NoError(t, src.Stop())
	_, open := <-src.Events()
	assert.False(t, open)
}
