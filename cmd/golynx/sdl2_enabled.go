//go:build sdl2

package main

import (
	"log/slog"
	"time"

	"github.com/golynx/golynx/lynx/backend/sdl2"
	"github.com/golynx/golynx/lynx/core"
)

// runSDL2 drives emu through the optional windowed SDL2 backend instead
// of the terminal renderer, until the window is closed or Escape is
// pressed.
func runSDL2(emu *core.Core, title string) error {
	b := sdl2.New()
	if err := b.Init(title); err != nil {
		return err
	}
	defer b.Cleanup()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	slog.Info("running with sdl2 backend")
	for b.Running() {
		<-ticker.C
		b.PollInput(emu)
		emu.RunToVblank()
		b.Present(emu.Screen.Buffer)
	}
	return nil
}
