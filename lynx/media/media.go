package media

import "io"

// Media owns the loaded cartridge and exposes the two bank-shift address
// generators Suzy's RCART0/RCART1 registers read through.
type Media struct {
	cart   *Cartridge
	shift0 *Shifter
	shift1 *Shifter
}

// New returns an empty Media with no cartridge inserted.
func New() *Media { return &Media{} }

// LoadCartridge parses raw and installs it, replacing anything previously
// loaded. BS93 homebrew images are exposed through IsHomebrewImage/
// LoadAddress instead of the bank shifters.
func (m *Media) LoadCartridge(raw []uint8) error {
	cart, err := Load(raw)
	if err != nil {
		return err
	}
	m.cart = cart
	if !cart.IsHomebrewImage() {
		m.shift0 = NewShifter(cart.Header.Bank0PageSize)
		m.shift1 = NewShifter(cart.Header.Bank1PageSize)
	}
	return nil
}

// Cartridge returns the currently loaded cartridge, or nil.
func (m *Media) Cartridge() *Cartridge { return m.cart }

// Loaded reports whether a cartridge is present.
func (m *Media) Loaded() bool { return m.cart != nil }

// SetStrobe fans SYSCTL1 bit 0 out to both bank shifters; only the
// currently selected bank's reads actually advance because RCART0/RCART1
// are separate register addresses.
func (m *Media) SetStrobe(on bool) {
	if m.shift0 != nil {
		m.shift0.SetStrobe(on)
	}
	if m.shift1 != nil {
		m.shift1.SetStrobe(on)
	}
}

// ShiftBit fans the serial address bit (IODAT bit 1) out to both shifters
// for the same reason as SetStrobe.
func (m *Media) ShiftBit(bit bool) {
	if m.shift0 != nil {
		m.shift0.ShiftBit(bit)
	}
	if m.shift1 != nil {
		m.shift1.ShiftBit(bit)
	}
}

// ReadCart0 services a read of Suzy's RCART0 register: bank 0 of the
// cartridge image, addressed through the bank-0 shifter.
func (m *Media) ReadCart0() uint8 {
	if m.cart == nil || m.shift0 == nil {
		return 0xFF
	}
	return m.shift0.ReadBank(m.cart.Bank0)
}

// ReadCart1 services a read of Suzy's RCART1 register.
func (m *Media) ReadCart1() uint8 {
	if m.cart == nil || m.shift1 == nil {
		return 0xFF
	}
	return m.shift1.ReadBank(m.cart.Bank1)
}

// Reset clears bank-shift sequencing without dropping the loaded image.
func (m *Media) Reset() {
	if m.shift0 != nil {
		m.shift0.Reset()
	}
	if m.shift1 != nil {
		m.shift1.Reset()
	}
}

// SaveState writes the bank-shift address generators' counters. The
// cartridge image itself is immutable ROM content identified by the
// save-state header's rom_crc field, not duplicated in the body; a BS93
// homebrew image has no shifters and writes nothing.
func (m *Media) SaveState(w io.Writer) error {
	if m.shift0 == nil {
		return nil
	}
	if err := m.shift0.saveState(w); err != nil {
		return err
	}
	return m.shift1.saveState(w)
}

// LoadState restores the bank-shift counters from r; the caller must have
// already loaded the matching cartridge via LoadCartridge.
func (m *Media) LoadState(r io.Reader) error {
	if m.shift0 == nil {
		return nil
	}
	if err := m.shift0.loadState(r); err != nil {
		return err
	}
	return m.shift1.loadState(r)
}
