//go:build sdl2

// Package sdl2 is an optional windowed renderer for the core, built only
// with the sdl2 tag (requires the SDL2 development libraries). Default
// builds use the terminal renderer instead; see cmd/golynx.
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/golynx/golynx/lynx/core"
	"github.com/golynx/golynx/lynx/display"
	"github.com/golynx/golynx/lynx/input"
)

const pixelScale = 4

// Backend owns the SDL2 window/renderer/texture chain for one running
// core. It covers windowed display and keyboard input only; there is no
// in-process debug overlay or audio output (see DESIGN.md).
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool

	pixelBuffer []byte
}

// New returns an uninitialized Backend; call Init before Update.
func New() *Backend { return &Backend{} }

// Init creates the window sized for the Lynx's 160x102 panel scaled up by
// pixelScale, and a streaming RGBA8888 texture matching core.Screen's
// native resolution.
func (b *Backend) Init(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: failed to initialize: %v", err)
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		display.ScreenWidth*pixelScale,
		display.ScreenHeight*pixelScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: failed to create window: %v", err)
	}
	b.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: failed to create renderer: %v", err)
	}
	b.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		display.ScreenWidth,
		display.ScreenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: failed to create texture: %v", err)
	}
	b.texture = texture

	b.pixelBuffer = make([]byte, display.ScreenWidth*display.ScreenHeight*display.RGBABytesPerPixel)
	b.running = true
	slog.Info("sdl2 backend initialized")
	return nil
}

// Cleanup tears down every SDL2 resource in reverse acquisition order.
func (b *Backend) Cleanup() {
	if b.texture != nil {
		b.texture.Destroy()
	}
	if b.renderer != nil {
		b.renderer.Destroy()
	}
	if b.window != nil {
		b.window.Destroy()
	}
	sdl.Quit()
}

// Running reports whether a quit event (window close or Escape) has
// arrived.
func (b *Backend) Running() bool { return b.running }

var keyMapping = map[sdl.Keycode]input.Key{
	sdl.K_UP:     input.Up,
	sdl.K_DOWN:   input.Down,
	sdl.K_LEFT:   input.Left,
	sdl.K_RIGHT:  input.Right,
	sdl.K_z:      input.ButtonA,
	sdl.K_x:      input.ButtonB,
	sdl.K_1:      input.Option1,
	sdl.K_2:      input.Option2,
	sdl.K_p:      input.Pause,
}

// PollInput drains the SDL2 event queue, latching key transitions into
// emu and setting Running() to false on a quit request.
func (b *Backend) PollInput(emu *core.Core) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			b.running = false
		case *sdl.KeyboardEvent:
			k, ok := keyMapping[e.Keysym.Sym]
			if !ok {
				if e.Keysym.Sym == sdl.K_ESCAPE && e.Type == sdl.KEYDOWN {
					b.running = false
				}
				continue
			}
			if e.Type == sdl.KEYDOWN {
				emu.KeyPressed(k)
			} else {
				emu.KeyReleased(k)
			}
		}
	}
}

// Present uploads screen's RGBA8888 buffer into the streaming texture and
// draws it scaled to the window.
func (b *Backend) Present(screen []byte) {
	copy(b.pixelBuffer, screen)
	b.texture.Update(nil, unsafe.Pointer(&b.pixelBuffer[0]), display.ScreenWidth*display.RGBABytesPerPixel)
	b.renderer.SetDrawColor(0, 0, 0, 0xFF)
	b.renderer.Clear()
	b.renderer.Copy(b.texture, nil, nil)
	b.renderer.Present()
}
