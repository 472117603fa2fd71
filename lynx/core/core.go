// Package core is the façade that wires together the CPU, Memory, Suzy,
// Mikey, Media and Input into a runnable Lynx system, and exposes the
// host-facing API (ROM/BIOS loading, the run-to-vblank scheduler, input,
// pause/reset, debugger control).
package core

import (
	"log/slog"
	"os"
	"sync"

	"github.com/golynx/golynx/lynx/bus"
	"github.com/golynx/golynx/lynx/cpu"
	"github.com/golynx/golynx/lynx/display"
	"github.com/golynx/golynx/lynx/input"
	"github.com/golynx/golynx/lynx/lcd"
	"github.com/golynx/golynx/lynx/media"
	"github.com/golynx/golynx/lynx/memory"
	"github.com/golynx/golynx/lynx/mikey"
	"github.com/golynx/golynx/lynx/suzy"
)

// BiosState reports the result of a LoadBIOS call.
type BiosState int

const (
	BiosMissing BiosState = iota
	BiosInvalid
	BiosValid
)

// DebuggerState gates RunToVblank: Paused stops the scheduler entirely,
// Step and StepFrame run one instruction or one frame then re-pause.
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStep
	DebuggerStepFrame
)

// maxFrameTicks caps a single RunToVblank call so cartridge code that
// never lets Mikey latch frame_ready (e.g. DISPCTL left disabled) can't
// hang the host.
const maxFrameTicks = 90000

// rawRAM adapts Memory's page-bypassing accessors to the plain Read/Write
// shape Suzy's sprite blit and Mikey's LCD DMA burst reader expect.
type rawRAM struct{ mem *memory.Memory }

func (r rawRAM) Read(address uint16) uint8     { return r.mem.RawRead(address) }
func (r rawRAM) Write(address uint16, v uint8) { r.mem.RawWrite(address, v) }

// Core owns every component plus the debugger/pause state gating the
// scheduler.
type Core struct {
	Bus    *bus.Bus
	Memory *memory.Memory
	CPU    *cpu.CPU
	Suzy   *suzy.Suzy
	Mikey  *mikey.Mikey
	Media  *media.Media
	Input  *input.Input
	Screen *lcd.Screen

	cartData  []uint8
	bios      []uint8
	biosState BiosState

	paused bool

	debugMutex    sync.RWMutex
	debuggerState DebuggerState

	frameCount       uint64
	instructionCount uint64
}

// New constructs every component, wires them together, and resets the
// system to power-up state with no cartridge or BIOS loaded.
func New(format display.PixelFormat) *Core {
	c := &Core{}
	c.init(format)
	return c
}

func (c *Core) init(format display.PixelFormat) {
	b := bus.New()
	mem := memory.New()
	ram := rawRAM{mem: mem}
	in := input.New()
	md := media.New()

	s := suzy.New(ram, b, in, md)
	m := mikey.New(ram, b)

	mem.Suzy = s
	mem.Mikey = m

	cp := cpu.New(mem)
	mem.Cpu = cp
	m.Cpu = cp
	m.Cartridge = md

	c.Bus = b
	c.Memory = mem
	c.CPU = cp
	c.Suzy = s
	c.Mikey = m
	c.Media = md
	c.Input = in
	c.Screen = lcd.NewScreen(format)

	c.Reset()
	slog.Info("core initialized")
}

// Reset reinitializes CPU/Suzy/Mikey/Media/Input state without discarding
// a loaded cartridge or BIOS image.
func (c *Core) Reset() {
	c.Memory.Reset()
	c.CPU.Reset()
	c.Suzy.Reset()
	c.Mikey.Reset()
	c.Input.Reset()
	c.Media.Reset()
	c.paused = false
	c.frameCount = 0
	c.instructionCount = 0
	slog.Info("core reset")
}

// LoadROMFromBuffer parses and installs a cartridge image, retaining the
// raw bytes so ResetROM(false) can reload it into a freshly built Core.
func (c *Core) LoadROMFromBuffer(raw []uint8) bool {
	if err := c.Media.LoadCartridge(raw); err != nil {
		slog.Warn("core: failed to load cartridge", "error", err)
		return false
	}
	c.cartData = raw
	if cart := c.Media.Cartridge(); cart != nil {
		applyRotation(c.Input, cart.Header.Rotation)
		if cart.EEPROM != nil {
			c.Mikey.EEPROM = cart.EEPROM
		}
	}
	slog.Info("core: cartridge loaded")
	return true
}

// LoadROMFromFile reads path and loads it as a cartridge image.
func (c *Core) LoadROMFromFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("core: failed to read ROM file", "path", path, "error", err)
		return false
	}
	return c.LoadROMFromBuffer(data)
}

// applyRotation reconfigures directional remapping for the cartridge's
// physical rotation byte; input.rotationMode is unexported, so this stays
// inside the package boundary as a plain switch on the exported constants.
func applyRotation(in *input.Input, r display.Rotation) {
	switch r {
	case display.RotationLeft:
		in.SetRotation(input.RotationLeft)
	case display.RotationRight:
		in.SetRotation(input.RotationRight)
	default:
		in.SetRotation(input.RotationNone)
	}
}

// LoadBIOS installs a 512-byte boot ROM image from path.
func (c *Core) LoadBIOS(path string) BiosState {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("core: failed to read BIOS file", "path", path, "error", err)
		c.biosState = BiosMissing
		return c.biosState
	}
	if err := c.Memory.LoadBIOS(data); err != nil {
		slog.Warn("core: invalid BIOS image", "error", err)
		c.biosState = BiosInvalid
		return c.biosState
	}
	c.bios = data
	c.biosState = BiosValid
	slog.Info("core: BIOS loaded")
	return c.biosState
}

// BiosState reports the outcome of the most recent LoadBIOS call.
func (c *Core) BiosState() BiosState { return c.biosState }

// RunToVblank executes instructions, feeding elapsed ticks to Suzy then
// Mikey, until Mikey latches frame_ready, a breakpoint fires, or the
// frame safety cap is reached. Returns true if a breakpoint halted
// execution before the frame completed.
func (c *Core) RunToVblank() bool {
	if c.biosState != BiosValid || c.paused {
		return false
	}
	if c.debuggerState == DebuggerPaused {
		return false
	}

	c.Mikey.FrameReady = false
	total := 0
	singleStep := c.debuggerState == DebuggerStep

	for !c.Mikey.FrameReady {
		ticks := c.CPU.Step()
		c.instructionCount++
		total += ticks

		injected := c.Bus.ConsumeCycles()
		allTicks := uint32(ticks) + injected

		c.Suzy.Clock(ticks)
		c.Mikey.Clock(allTicks)

		if c.CPU.BreakHit {
			c.CPU.BreakHit = false
			c.debuggerState = DebuggerPaused
			return true
		}
		if singleStep {
			c.debuggerState = DebuggerPaused
			break
		}
		if total >= maxFrameTicks {
			slog.Warn("core: frame timeout reached without frame_ready", "ticks", total)
			break
		}
	}

	c.frameCount++
	c.Screen.Translate(c.Mikey.Screen(), rotationHeader(c))
	if c.debuggerState == DebuggerStepFrame {
		c.debuggerState = DebuggerPaused
	}
	return false
}

func rotationHeader(c *Core) display.Rotation {
	if cart := c.Media.Cartridge(); cart != nil {
		return cart.Header.Rotation
	}
	return display.RotationNone
}

// KeyPressed / KeyReleased latch one of the logical buttons.
func (c *Core) KeyPressed(k input.Key)  { c.Input.KeyPressed(k) }
func (c *Core) KeyReleased(k input.Key) { c.Input.KeyReleased(k) }

// Pause toggles whether RunToVblank performs any work.
func (c *Core) Pause(paused bool) { c.paused = paused }

// ResetROM reinitializes the system. When preserveRAM is false, every
// component (including RAM) is rebuilt from scratch and the retained
// cartridge/BIOS images are reloaded into the fresh Core; when true, only
// architectural state resets and RAM contents survive.
func (c *Core) ResetROM(preserveRAM bool) {
	if preserveRAM {
		c.Reset()
		return
	}

	cart, bios := c.cartData, c.bios
	c.init(c.Screen.Format)
	if bios != nil {
		if err := c.Memory.LoadBIOS(bios); err == nil {
			c.bios = bios
			c.biosState = BiosValid
		}
	}
	if cart != nil {
		c.LoadROMFromBuffer(cart)
	}
}

// RuntimeInfo reports the fixed screen geometry and a representative
// frame time; the core has no real-time pacing of its own; it is driven
// purely by RunToVblank calls from the host's own loop.
type RuntimeInfo struct {
	ScreenWidth  int
	ScreenHeight int
	FrameTimeMs  float64
}

func (c *Core) GetRuntimeInfo() RuntimeInfo {
	return RuntimeInfo{
		ScreenWidth:  display.ScreenWidth,
		ScreenHeight: display.ScreenHeight,
		FrameTimeMs:  16.6,
	}
}

// GetFrameCount and GetInstructionCount expose the façade's own run
// counters for debug tooling and tests.
func (c *Core) GetFrameCount() uint64       { return c.frameCount }
func (c *Core) GetInstructionCount() uint64 { return c.instructionCount }

// SetDebuggerState and GetDebuggerState are mutex-guarded since a host UI
// may read debugger state from a different goroutine than the one driving
// RunToVblank.
func (c *Core) SetDebuggerState(s DebuggerState) {
	c.debugMutex.Lock()
	defer c.debugMutex.Unlock()
	c.debuggerState = s
}

func (c *Core) GetDebuggerState() DebuggerState {
	c.debugMutex.RLock()
	defer c.debugMutex.RUnlock()
	return c.debuggerState
}

// DebuggerPause, DebuggerResume, StepInstruction and StepFrame are thin
// convenience wrappers over SetDebuggerState.
func (c *Core) DebuggerPause()     { c.SetDebuggerState(DebuggerPaused) }
func (c *Core) DebuggerResume()    { c.SetDebuggerState(DebuggerRunning) }
func (c *Core) StepInstruction()   { c.SetDebuggerState(DebuggerStep) }
func (c *Core) StepFrame()         { c.SetDebuggerState(DebuggerStepFrame) }
