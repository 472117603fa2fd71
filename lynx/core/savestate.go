package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"time"
)

const (
	saveStateMagic   = "GLYX"
	saveStateVersion = 1
	romNameLen       = 32
	buildIDLen       = 32
)

var buildID = padString("golynx")

// saveStateHeader is the trailing, fixed-size record every save state
// ends with, followed only by the raw screenshot payload. Writing it
// last lets the body be streamed out before its total length is known;
// reading it is a seek-from-the-end away from needing to parse the body
// forward at all.
type saveStateHeader struct {
	Magic      [4]byte
	Version    uint32
	BodySize   uint32
	Timestamp  int64
	RomName    [romNameLen]byte
	RomCRC     uint32
	ScreenSize uint32
	ScreenW    uint32
	ScreenH    uint32
	EmuBuild   [buildIDLen]byte
}

const headerSize = 4 + 4 + 4 + 8 + romNameLen + 4 + 4 + 4 + 4 + buildIDLen

func padString(s string) [32]byte {
	var out [32]byte
	copy(out[:], s)
	return out
}

// SaveState serializes every component's architectural state, in the
// same construction order New wires them in, followed by the trailing
// header and a raw screenshot of the last completed frame. The result
// round-trips through LoadState; two consecutive calls on untouched
// state produce byte-identical output except for the Timestamp field.
func (c *Core) SaveState() ([]byte, error) {
	var body bytes.Buffer
	writers := []func(io.Writer) error{
		c.Memory.SaveState,
		c.Input.SaveState,
		c.Media.SaveState,
		c.Suzy.SaveState,
		c.Mikey.SaveState,
		c.CPU.SaveState,
	}
	for _, save := range writers {
		if err := save(&body); err != nil {
			return nil, fmt.Errorf("core: save state: %w", err)
		}
	}

	header := saveStateHeader{
		Version:   saveStateVersion,
		BodySize:  uint32(body.Len()),
		Timestamp: time.Now().Unix(),
		RomCRC:    crc32.ChecksumIEEE(c.cartData),
		EmuBuild:  buildID,
	}
	copy(header.Magic[:], saveStateMagic)
	if cart := c.Media.Cartridge(); cart != nil {
		copy(header.RomName[:], cart.Header.Name)
	}

	w, h := c.Screen.Dimensions()
	header.ScreenW = uint32(w)
	header.ScreenH = uint32(h)
	header.ScreenSize = uint32(len(c.Screen.Buffer))

	var out bytes.Buffer
	out.Write(body.Bytes())
	if err := binary.Write(&out, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("core: writing header: %w", err)
	}
	out.Write(c.Screen.Buffer)

	return out.Bytes(), nil
}

// LoadState validates and restores a buffer produced by SaveState. On any
// corruption or mismatch (bad magic, unsupported version, truncated
// body, ROM CRC mismatch against the currently loaded cartridge) it
// aborts and leaves the current state untouched.
func (c *Core) LoadState(data []byte) error {
	screenshotSize := len(c.Screen.Buffer)
	headerStart := len(data) - headerSize - screenshotSize
	if headerStart < 0 {
		return fmt.Errorf("core: load state: truncated buffer")
	}

	var header saveStateHeader
	r := bytes.NewReader(data[headerStart : headerStart+headerSize])
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("core: load state: reading header: %w", err)
	}
	if string(header.Magic[:]) != saveStateMagic {
		return fmt.Errorf("core: load state: corrupt header (bad magic)")
	}
	if header.Version != saveStateVersion {
		return fmt.Errorf("core: load state: unsupported version %d", header.Version)
	}
	if int(header.BodySize) != headerStart {
		return fmt.Errorf("core: load state: corrupt header (body size)")
	}
	if c.cartData != nil && header.RomCRC != crc32.ChecksumIEEE(c.cartData) {
		return fmt.Errorf("core: load state: ROM CRC mismatch")
	}

	body := bytes.NewReader(data[:header.BodySize])
	loaders := []func(io.Reader) error{
		c.Memory.LoadState,
		c.Input.LoadState,
		c.Media.LoadState,
		c.Suzy.LoadState,
		c.Mikey.LoadState,
		c.CPU.LoadState,
	}
	for _, load := range loaders {
		if err := load(body); err != nil {
			return fmt.Errorf("core: load state: %w", err)
		}
	}
	return nil
}
