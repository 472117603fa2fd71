// Package memory implements the unified 64KiB address space shared by the
// CPU, Suzy and Mikey: a flat RAM array plus a 256-entry page table that
// MAPCTL rewires to hide or reveal Suzy, Mikey, the BIOS and the interrupt
// vectors in the last 256 bytes of the space.
package memory

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/golynx/golynx/lynx/addr"
)

// pageTarget tags how a page's reads/writes are routed. Mirrors the
// reference core's PageTarget enum: a direct RAM slice or one of the
// chip callbacks.
type pageTarget uint8

const (
	pageRAM pageTarget = iota
	pageSuzy
	pageMikey
	pageBios
	pageLast
)

// Chip is the callback interface Suzy and Mikey each satisfy for their MMIO
// block. Memory holds no pointer to the concrete chip types, only this.
type Chip interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPUHalter lets Memory toggle the CPU's page-mode-discount flag without
// importing the cpu package directly (neither package imports the other).
type CPUHalter interface {
	SetPageModeEnabled(enabled bool)
}

// Memory is the 65C02's Bus implementation.
type Memory struct {
	ram [0x10000]uint8

	mapctl uint8

	bios     []uint8 // 512-byte BIOS image, nil until loaded
	biosHigh uint16  // first address of the BIOS shadow ($FE00)

	Suzy  Chip
	Mikey Chip
	Cpu   CPUHalter

	readPage  [256]pageTarget
	writePage [256]pageTarget
}

// New creates a Memory with RAM zeroed and every page routed straight to
// RAM; call SetMapCtl once Suzy/Mikey/Cpu are wired to establish the real
// power-up page table.
func New() *Memory {
	m := &Memory{biosHigh: 0xFE00}
	for i := range m.readPage {
		m.readPage[i] = pageRAM
		m.writePage[i] = pageRAM
	}
	return m
}

// LoadBIOS installs a 512-byte BIOS image visible at $FE00-$FFF7 whenever
// MAPCTL bit 2 is clear.
func (m *Memory) LoadBIOS(image []uint8) error {
	if len(image) != 512 {
		return fmt.Errorf("memory: BIOS image must be 512 bytes, got %d", len(image))
	}
	m.bios = image
	m.rebuildPageTable()
	return nil
}

// Reset clears RAM-independent chip visibility back to power-up defaults
// (everything hidden region visible, fast-page mode off) without touching
// RAM contents; callers that want a cold RAM too should recreate Memory.
func (m *Memory) Reset() {
	m.SetMapCtl(0)
}

// Read performs a single indirect page-table lookup. $FFF9 (MAPCTL) is
// special-cased ahead of the table so it is reachable regardless of
// visibility bits.
func (m *Memory) Read(address uint16) uint8 {
	if address == addr.MAPCTL {
		return m.mapctl
	}
	switch m.readPage[address>>8] {
	case pageRAM:
		return m.ram[address]
	case pageSuzy:
		return m.Suzy.Read(address)
	case pageMikey:
		return m.Mikey.Read(address)
	case pageBios:
		return m.readBios(address)
	case pageLast:
		return m.readLastPage(address)
	}
	return 0xFF
}

// Write mirrors Read's routing, except writes to the BIOS and last pages
// always land in RAM even when those pages are visible for reads — the
// physical BIOS ROM cannot be written, only shadowed.
func (m *Memory) Write(address uint16, value uint8) {
	if address == addr.MAPCTL {
		m.SetMapCtl(value)
		return
	}
	switch m.writePage[address>>8] {
	case pageSuzy:
		m.Suzy.Write(address, value)
	case pageMikey:
		m.Mikey.Write(address, value)
	default:
		m.ram[address] = value
	}
}

// RawRead and RawWrite give Suzy's sprite blit/collision engine and
// Mikey's LCD DMA burst reader direct access to the backing RAM array,
// bypassing MAPCTL page routing entirely — mirroring how the reference
// core's chip classes touch `m_ram` directly instead of going back
// through the full bus.
func (m *Memory) RawRead(address uint16) uint8 { return m.ram[address] }

func (m *Memory) RawWrite(address uint16, value uint8) { m.ram[address] = value }

func (m *Memory) readBios(address uint16) uint8 {
	if m.bios == nil {
		slog.Warn("memory: BIOS page read with no BIOS loaded", "addr", fmt.Sprintf("0x%04X", address))
		return m.ram[address]
	}
	return m.bios[address-m.biosHigh]
}

// readLastPage reproduces the reference core's special-cased last-page
// logic: the BIOS shadow tail ($FF00-$FFF7) routes to BIOS unless bit 2
// says it's hidden, vectors ($FFFA-$FFFF) route to BIOS unless bit 3 says
// they're hidden, $FFF8 is a documented unused byte that's logged and
// always falls through to RAM, and both ranges return RAM instead of
// BIOS when their gating bit is set (page $FF only; page $FE never
// reaches here since it's already gated by the page table).
func (m *Memory) readLastPage(address uint16) uint8 {
	switch {
	case address < 0xFFF8:
		if m.mapctl&0x04 != 0 {
			return m.ram[address]
		}
		return m.readBios(address)
	case address == 0xFFF8:
		slog.Debug("memory: read of documented-unused byte $FFF8")
		return m.ram[address]
	case address > addr.MAPCTL: // $FFFA..$FFFF
		if m.mapctl&0x08 != 0 {
			return m.ram[address]
		}
		return m.readBios(address)
	default:
		return m.ram[address]
	}
}

// SetMapCtl rewrites the page table per the new MAPCTL value and toggles
// the CPU's fast-page mode (bit 7).
func (m *Memory) SetMapCtl(value uint8) {
	m.mapctl = value
	if m.Cpu != nil {
		m.Cpu.SetPageModeEnabled(value&0x80 != 0)
	}
	m.rebuildPageTable()
}

// MapCtl returns the last value written to $FFF9 (also directly reachable
// through Read, this accessor exists for save-state code and tests).
func (m *Memory) MapCtl() uint8 { return m.mapctl }

func (m *Memory) rebuildPageTable() {
	// Page $FC: Suzy, hidden (RAM visible) when bit 0 is set.
	if m.mapctl&0x01 != 0 {
		m.readPage[0xFC] = pageRAM
	} else {
		m.readPage[0xFC] = pageSuzy
	}
	m.writePage[0xFC] = m.readPage[0xFC]

	// Page $FD: Mikey, hidden when bit 1 is set.
	if m.mapctl&0x02 != 0 {
		m.readPage[0xFD] = pageRAM
	} else {
		m.readPage[0xFD] = pageMikey
	}
	m.writePage[0xFD] = m.readPage[0xFD]

	// Page $FE: BIOS, hidden when bit 2 is set. Writes always land in RAM
	// regardless of visibility — the BIOS ROM itself cannot be written.
	if m.mapctl&0x04 != 0 {
		m.readPage[0xFE] = pageRAM
	} else {
		m.readPage[0xFE] = pageBios
	}
	m.writePage[0xFE] = pageRAM

	// Page $FF is always function-routed: it mixes vectors, MAPCTL and the
	// tail of the BIOS shadow, so a single direct-pointer target can't
	// describe it.
	m.readPage[0xFF] = pageLast
	m.writePage[0xFF] = pageRAM
}

// SaveState writes the full RAM image and MAPCTL value, in that order.
func (m *Memory) SaveState(w io.Writer) error {
	if _, err := w.Write(m.ram[:]); err != nil {
		return fmt.Errorf("memory: writing ram: %w", err)
	}
	return binary.Write(w, binary.LittleEndian, m.mapctl)
}

// LoadState restores RAM and MAPCTL from r and rebuilds the page table so
// Suzy/Mikey/BIOS visibility matches the restored MAPCTL value.
func (m *Memory) LoadState(r io.Reader) error {
	if _, err := io.ReadFull(r, m.ram[:]); err != nil {
		return fmt.Errorf("memory: reading ram: %w", err)
	}
	var mapctl uint8
	if err := binary.Read(r, binary.LittleEndian, &mapctl); err != nil {
		return fmt.Errorf("memory: reading mapctl: %w", err)
	}
	m.SetMapCtl(mapctl)
	return nil
}
