// Package main implements the gones NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/frame"
	"gones/internal/ppu"
	"gones/internal/runtime"
	"gones/internal/runtimecfg"
	"gones/internal/shell"
	"gones/internal/version"
)

func main() {
	var (
		romFile = flag.String("rom", "", "Path to NES ROM file (optional for GUI mode)")
		nogui   = flag.Bool("nogui", false, "Run without GUI (headless mode)")
		frames  = flag.Int("frames", 120, "Number of frames to run in headless mode")
		help    = flag.Bool("help", false, "Show help message")
		ver     = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *ver {
		version.PrintBuildInfo()
		return
	}

	if *nogui {
		if *romFile == "" {
			log.Fatal("ROM file required for headless mode")
		}
		if err := runHeadless(*romFile, *frames); err != nil {
			log.Fatalf("headless run failed: %v", err)
		}
		return
	}

	if err := runGUI(*romFile); err != nil {
		log.Fatalf("GUI mode failed: %v", err)
	}
}

func loadConfig() *runtimecfg.Config {
	cfg := runtimecfg.New()
	if err := cfg.LoadFromFile(runtimecfg.DefaultConfigPath()); err != nil {
		log.Printf("using default config: %v", err)
		return runtimecfg.New()
	}
	return cfg
}

func runGUI(romFile string) error {
	game, err := shell.New(loadConfig())
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}

	if romFile != "" {
		data, err := os.ReadFile(romFile)
		if err != nil {
			return fmt.Errorf("reading ROM: %w", err)
		}
		game.Console().Send(runtime.LoadROM{Data: data})
	}

	ebiten.SetWindowTitle("gones")
	ebiten.SetWindowSize(768, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

// runHeadless drives a console for a fixed number of frames with no
// window, dumping a PPM screenshot at the end. Useful for smoke tests
// and for eyeballing rendering without a display attached.
func runHeadless(romFile string, frameTarget int) error {
	data, err := os.ReadFile(romFile)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	console := runtime.NewWithConfig(loadConfig())
	console.Send(runtime.LoadROM{Data: data})

	// Drain the LoadROM result before stepping so a bad ROM fails fast.
	scratch := make([]byte, 4)
	if _, err := console.Read(scratch); err != nil {
		return err
	}
	if ev, ok := console.TryRecv(); ok {
		if loaded, ok := ev.(runtime.RomLoaded); ok && loaded.Err != nil {
			return fmt.Errorf("loading ROM: %w", loaded.Err)
		}
	}

	for console.Bus.GetFrameCount() < uint64(frameTarget) {
		console.Bus.Step()
	}

	fmt.Printf("ran %d frames\n", console.Bus.GetFrameCount())

	var buf frame.Buffer
	copy(buf[:], console.Bus.GetFrameBuffer())
	return savePPM(&buf, "frame_final.ppm")
}

func savePPM(buf *frame.Buffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")
	for _, index := range buf {
		rgb := ppu.NESColorToRGB(index)
		fmt.Fprintf(file, "%d %d %d ", (rgb>>16)&0xFF, (rgb>>8)&0xFF, rgb&0xFF)
	}
	fmt.Printf("saved %s\n", path)
	return nil
}

func printUsage() {
	fmt.Println("gones - Go NES Emulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gones [options]                    # Start GUI mode without ROM")
	fmt.Println("  gones -rom <file> [options]        # Start with ROM loaded")
	fmt.Println("  gones -nogui -rom <file> [options] # Run headless mode")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("CONTROLS:")
	fmt.Println("  Arrow Keys - D-Pad")
	fmt.Println("  Z / J      - A Button")
	fmt.Println("  X / K      - B Button")
	fmt.Println("  Enter      - Start")
	fmt.Println("  Space      - Select")
	fmt.Println("  R          - Reset")
	fmt.Println("  Escape     - Quit")
}
