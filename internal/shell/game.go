// Package shell wires a runtime.Console up to an Ebitengine window:
// it decodes the console's published palette-index frame into an RGBA
// image each Draw, and turns keyboard state into runtime Commands each
// Update.
package shell

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gones/internal/frame"
	"gones/internal/input"
	"gones/internal/neserr"
	"gones/internal/ppu"
	"gones/internal/runtime"
	"gones/internal/runtimecfg"
)

// Game implements ebiten.Game, driving a console via its audio-pulled
// Read loop and rendering whatever frame that loop last published.
type Game struct {
	console *runtime.Console
	player  *audio.Player

	screen      *ebiten.Image
	pixels      []byte // reused RGBA scratch buffer, avoids a per-frame allocation
	windowW     int
	windowH     int
	pressed     map[ebiten.Key]bool
	quitPending bool
}

// New creates a Game around a console built from cfg and starts its
// audio stream, which is what actually drives emulation forward.
func New(cfg *runtimecfg.Config) (*Game, error) {
	console := runtime.NewWithConfig(cfg)

	ctx := audio.NewContext(cfg.Audio.SampleRate)
	player, err := ctx.NewPlayer(console)
	if err != nil {
		return nil, &neserr.AudioInitError{Reason: err.Error()}
	}
	player.Play()

	return &Game{
		console: console,
		player:  player,
		screen:  ebiten.NewImage(frame.Width, frame.Height),
		pixels:  make([]byte, frame.Width*frame.Height*4),
		pressed: make(map[ebiten.Key]bool),
	}, nil
}

// Console exposes the underlying runtime so callers (tests, cmd/gones)
// can send LoadROM before the window opens.
func (g *Game) Console() *runtime.Console { return g.console }

var keyToButton = map[ebiten.Key]input.Button{
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyJ:          input.ButtonA,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyK:          input.ButtonB,
	ebiten.KeySpace:      input.ButtonSelect,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

// Update implements ebiten.Game.Update.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.quitPending = true
	}

	for key, button := range keyToButton {
		down := ebiten.IsKeyPressed(key)
		if down == g.pressed[key] {
			continue
		}
		g.pressed[key] = down
		g.console.Send(runtime.SetButton{Controller: 0, Button: button, Pressed: down})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.console.Send(runtime.Reset{})
	}

	for {
		if _, ok := g.console.TryRecv(); !ok {
			break
		}
	}

	if g.quitPending {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.Draw, decoding the console's latest
// published frame from system-palette indices into RGBA.
func (g *Game) Draw(screen *ebiten.Image) {
	buf := g.console.Frame.Read()
	for i, index := range buf {
		rgb := ppu.NESColorToRGB(index)
		g.pixels[i*4+0] = uint8(rgb >> 16)
		g.pixels[i*4+1] = uint8(rgb >> 8)
		g.pixels[i*4+2] = uint8(rgb)
		g.pixels[i*4+3] = 0xFF
	}
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(sw) / float64(frame.Width)
	scaleY := float64(sh) / float64(frame.Height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	offsetX := (float64(sw) - float64(frame.Width)*scale) / 2
	offsetY := (float64(sh) - float64(frame.Height)*scale) / 2

	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)

	screen.Fill(color.Black)
	screen.DrawImage(g.screen, op)
}

// Layout implements ebiten.Game.Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.windowW, g.windowH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
