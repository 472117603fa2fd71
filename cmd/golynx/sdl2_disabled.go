//go:build !sdl2

package main

import (
	"errors"

	"github.com/golynx/golynx/lynx/core"
)

// runSDL2 is a stand-in for builds without the sdl2 tag; the real
// implementation lives in sdl2_enabled.go.
func runSDL2(emu *core.Core, title string) error {
	return errors.New("golynx was built without the sdl2 tag; rebuild with -tags sdl2 to use --sdl2")
}
