// Package media owns the cartridge container: LYNX/BS93 header parsing,
// the bank-0/bank-1 images, and the 21-bit bank-shift address generator
// Mikey's IODAT/SYSCTL1 pins drive during cartridge reads.
package media

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golynx/golynx/lynx/display"
	"github.com/golynx/golynx/lynx/eeprom"
)

const headerSize = 64

var lynxMagic = []byte("LYNX")
var bs93Magic = []byte("BS93")

// Header is the decoded 64-byte LYNX cartridge header.
type Header struct {
	Bank0PageSize uint16
	Bank1PageSize uint16
	Version       uint16
	Name          string
	Manufacturer  string
	Rotation      display.Rotation
	AudinEnabled  bool
	EEPROMType    eeprom.Type
	EEPROMWide    bool
}

// Cartridge is the loaded ROM image plus the header that describes how to
// address it, and the optional EEPROM a homebrew/commercial title embeds.
type Cartridge struct {
	Header  Header
	Bank0   []uint8
	Bank1   []uint8
	EEPROM  *eeprom.EEPROM
	isBS93  bool
	bs93Load uint16
}

// Load recognizes either a LYNX-headered commercial image or a BS93
// homebrew image and returns a populated Cartridge.
func Load(raw []uint8) (*Cartridge, error) {
	switch {
	case len(raw) >= headerSize && bytes.Equal(raw[0:4], lynxMagic):
		return loadLynx(raw)
	case len(raw) >= 8 && bytes.Equal(raw[4:8], bs93Magic):
		return loadBS93(raw)
	default:
		return nil, fmt.Errorf("media: unrecognized cartridge header")
	}
}

func loadLynx(raw []uint8) (*Cartridge, error) {
	h := Header{
		Bank0PageSize: binary.LittleEndian.Uint16(raw[4:6]),
		Bank1PageSize: binary.LittleEndian.Uint16(raw[6:8]),
		Version:       binary.LittleEndian.Uint16(raw[8:10]),
		Name:          cString(raw[10:42]),
		Manufacturer:  cString(raw[42:58]),
		Rotation:      display.Rotation(raw[58]),
		AudinEnabled:  raw[59] != 0,
	}

	descriptor := raw[60]
	h.EEPROMType = eeprom.NewType(descriptor)
	h.EEPROMWide = descriptor&0x80 == 0

	body := raw[headerSize:]
	bank0Size := int(h.Bank0PageSize) * pageCount(h.Bank0PageSize)
	if bank0Size > len(body) {
		bank0Size = len(body)
	}
	bank0 := body[:bank0Size]
	bank1 := body[bank0Size:]

	c := &Cartridge{Header: h, Bank0: bank0, Bank1: bank1}
	if h.EEPROMType != eeprom.TypeNone {
		c.EEPROM = eeprom.New(h.EEPROMType, h.EEPROMWide)
	}
	return c, nil
}

// pageCount returns how many pages of the declared size fit in a 64KiB
// bank. The header only states page size, not page count, so this is an
// upper bound; the image length is not consulted here.
func pageCount(pageSize uint16) int {
	if pageSize == 0 {
		return 0
	}
	return 1 << 16 / int(pageSize) // upper bound; loadLynx clamps to body length
}

func loadBS93(raw []uint8) (*Cartridge, error) {
	loadAddr := binary.LittleEndian.Uint16(raw[0:2])
	size := binary.LittleEndian.Uint16(raw[2:4])
	body := raw[8:]
	if int(size) > len(body) {
		size = uint16(len(body))
	}
	return &Cartridge{
		isBS93:   true,
		bs93Load: loadAddr,
		Bank0:    body[:size],
	}, nil
}

func cString(b []uint8) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// IsHomebrewImage reports whether this cartridge is a direct-RAM BS93
// image rather than a bank-addressed LYNX cartridge.
func (c *Cartridge) IsHomebrewImage() bool { return c.isBS93 }

// LoadAddress is only meaningful for a BS93 image: the address its payload
// should be copied to directly instead of being bank-addressed.
func (c *Cartridge) LoadAddress() uint16 { return c.bs93Load }
