package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/golynx/golynx/internal/snapshot"
	"github.com/golynx/golynx/lynx/core"
	"github.com/golynx/golynx/lynx/display"
	"github.com/golynx/golynx/lynx/input"
)

// Since terminal characters are taller than wide, scale the width more to
// keep the Lynx panel's approximate aspect ratio.
const (
	scaleX = 2
	scaleY = 1

	frameTime = time.Second / 60
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

// TerminalRenderer drives a Core through a tcell screen, sampling the
// RGBA8888 framebuffer into a shaded-character grid sized for the Lynx's
// 160x102 panel.
type TerminalRenderer struct {
	screen    tcell.Screen
	emu       *core.Core
	running   bool
	statePath string
}

func NewTerminalRenderer(emu *core.Core, statePath string) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	return &TerminalRenderer{screen: screen, emu: emu, running: true, statePath: statePath}, nil
}

func (t *TerminalRenderer) Run() error {
	defer func() {
		slog.Info("finishing terminal")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-ticker.C:
			t.emu.RunToVblank()
			t.render()
			t.screen.Show()
		case <-signals:
			t.running = false
			slog.Info("received signal to stop")
			return nil
		}
	}
	return nil
}

var keyMap = map[tcell.Key]input.Key{
	tcell.KeyUp:    input.Up,
	tcell.KeyDown:  input.Down,
	tcell.KeyLeft:  input.Left,
	tcell.KeyRight: input.Right,
}

var runeMap = map[rune]input.Key{
	'z': input.ButtonA,
	'x': input.ButtonB,
	'1': input.Option1,
	'2': input.Option2,
	'p': input.Pause,
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				t.running = false
				return
			}
			if ev.Key() == tcell.KeyF12 {
				t.saveSnapshot()
				continue
			}
			if ev.Key() == tcell.KeyF5 {
				t.saveState()
				continue
			}
			if ev.Key() == tcell.KeyF9 {
				t.loadState()
				continue
			}
			if k, ok := keyMap[ev.Key()]; ok {
				t.emu.KeyPressed(k)
				continue
			}
			if k, ok := runeMap[ev.Rune()]; ok {
				t.emu.KeyPressed(k)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *TerminalRenderer) saveSnapshot() {
	if err := snapshot.Save(t.emu.Screen, "golynx_snapshot", ""); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}

func (t *TerminalRenderer) saveState() {
	data, err := t.emu.SaveState()
	if err != nil {
		slog.Error("failed to build save state", "error", err)
		return
	}
	if err := os.WriteFile(t.statePath, data, 0o644); err != nil {
		slog.Error("failed to write save state", "path", t.statePath, "error", err)
		return
	}
	slog.Info("save state written", "path", t.statePath)
}

func (t *TerminalRenderer) loadState() {
	data, err := os.ReadFile(t.statePath)
	if err != nil {
		slog.Error("failed to read save state", "path", t.statePath, "error", err)
		return
	}
	if err := t.emu.LoadState(data); err != nil {
		slog.Error("failed to load save state", "path", t.statePath, "error", err)
		return
	}
	slog.Info("save state loaded", "path", t.statePath)
}

// render samples every 4th byte (alpha-adjacent red channel would do, but
// green carries perceived brightness best) of the RGBA8888 buffer into a
// four-shade terminal glyph grid.
func (t *TerminalRenderer) render() {
	w, h := t.emu.Screen.Dimensions()
	buf := t.emu.Screen.Buffer
	t.screen.Clear()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * display.RGBABytesPerPixel
			g := buf[off+1]
			shade := 3 - int(g)/64
			if shade < 0 {
				shade = 0
			}
			if shade > 3 {
				shade = 3
			}
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shade]
			screenX, screenY := x*scaleX, y*scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "golynx"
	app.Description = "An Atari Lynx emulator core"
	app.Usage = "golynx [options] <cartridge file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "Path to the cartridge image"},
		cli.StringFlag{Name: "bios", Usage: "Path to the 512-byte boot ROM image", Value: "lynxboot.img"},
		cli.BoolFlag{Name: "headless", Usage: "Run without a terminal display"},
		cli.BoolFlag{Name: "sdl2", Usage: "Use the windowed SDL2 backend instead of the terminal renderer (requires a binary built with -tags sdl2)"},
		cli.IntFlag{Name: "frames", Usage: "Number of frames to run in headless mode (required for headless)"},
		cli.IntFlag{Name: "snapshot-interval", Usage: "Save a PNG snapshot every N frames in headless mode (0 = disabled)"},
		cli.StringFlag{Name: "snapshot-dir", Usage: "Directory to save snapshots (default: current directory)"},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no cartridge path provided")
		}
	}

	emu := core.New(display.PixelFormatRGBA8888)
	if state := emu.LoadBIOS(c.String("bios")); state != core.BiosValid {
		return fmt.Errorf("failed to load boot ROM from %q", c.String("bios"))
	}
	if !emu.LoadROMFromFile(romPath) {
		return fmt.Errorf("failed to load cartridge from %q", romPath)
	}

	if c.Bool("headless") {
		return runHeadless(c, emu)
	}

	if c.Bool("sdl2") {
		return runSDL2(emu, "golynx - "+romPath)
	}

	renderer, err := NewTerminalRenderer(emu, romPath+".state")
	if err != nil {
		return err
	}
	return renderer.Run()
}

func runHeadless(c *cli.Context, emu *core.Core) error {
	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("headless mode requires --frames with a positive value")
	}

	interval := c.Int("snapshot-interval")
	dir := c.String("snapshot-dir")
	if interval > 0 && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	slog.Info("running headless", "frames", frames, "snapshot_interval", interval)
	for i := 0; i < frames; i++ {
		emu.RunToVblank()
		if interval > 0 && (i+1)%interval == 0 {
			if err := snapshot.Save(emu.Screen, "golynx_frame", dir); err != nil {
				slog.Error("failed to save snapshot", "frame", i+1, "error", err)
			}
		}
		if i%60 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}
	slog.Info("headless execution completed", "frames", emu.GetFrameCount(), "instructions", emu.GetInstructionCount())
	return nil
}
