//go:build !headless
// +build !headless

package shell

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/input"
)

func TestLayoutReturnsRequestedSize(t *testing.T) {
	g := &Game{}
	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Fatalf("expected (640, 480), got (%d, %d)", w, h)
	}
	if g.windowW != 640 || g.windowH != 480 {
		t.Fatalf("expected windowW/windowH to be recorded, got (%d, %d)", g.windowW, g.windowH)
	}
}

func TestKeyToButtonCoversAllFaceAndDpadButtons(t *testing.T) {
	want := []input.Button{
		input.ButtonA, input.ButtonB, input.ButtonSelect, input.ButtonStart,
		input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
	}
	seen := make(map[input.Button]bool)
	for _, b := range keyToButton {
		seen[b] = true
	}
	for _, b := range want {
		if !seen[b] {
			t.Errorf("keyToButton is missing a binding for button %v", b)
		}
	}
}

func TestKeyToButtonBindsBothADuplicateKeysToSameButton(t *testing.T) {
	if keyToButton[ebiten.KeyZ] != keyToButton[ebiten.KeyJ] {
		t.Error("expected Z and J to both map to ButtonA")
	}
	if keyToButton[ebiten.KeyX] != keyToButton[ebiten.KeyK] {
		t.Error("expected X and K to both map to ButtonB")
	}
}
