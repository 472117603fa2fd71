package suzy

import (
	"github.com/golynx/golynx/lynx/bus"
	"github.com/golynx/golynx/lynx/display"
)

// shiftRegister is the bit-serial reader DrawSprite pulls packed and
// literal pixel data through, MSB-first within each byte.
type shiftRegister struct {
	address uint16
	current uint8
	bit     int
}

func (r *shiftRegister) reset(ram Ram, address uint16) {
	r.address = address
	r.current = ram.Read(address)
	r.bit = 7
}

// getBits pulls n bits MSB-first, clamping at stopAddr the way the
// reference shift register does: once the next byte would be at or past
// stopAddr, remaining bits come back zero instead of overrunning.
func (r *shiftRegister) getBits(ram Ram, n int, stopAddr uint16) uint32 {
	var value uint32
	for n > 0 {
		if r.bit < 0 {
			r.address++
			if r.address >= stopAddr {
				break
			}
			r.current = ram.Read(r.address)
			r.bit = 7
		}
		value = value<<1 | uint32((r.current>>uint(r.bit))&1)
		r.bit--
		n--
	}
	return value
}

func (r *shiftRegister) peek5(ram Ram, stopAddr uint16) uint32 {
	saved := *r
	v := r.getBits(ram, 5, stopAddr)
	*r = saved
	return v
}

// runSpriteEngine walks the SCB linked list starting at SCBNEXT, drawing
// each sprite control block to completion before moving to the next.
// SPRGO is expected to already be armed by the caller; this method runs
// the whole list atomically, matching how the reference core treats a
// sprite pass as a single uninterruptible hardware burst.
func (s *Suzy) runSpriteEngine() {
	scb := s.ScbNext.value()
	for scb&0xFF00 != 0 {
		next := s.ramReadWord(scb + 3)
		s.drawSprite(scb)
		scb = next
	}
	s.ScbNext.setValue(0)
	s.Bus.InjectCycles(bus.CostSpriteDMA)
}

func (s *Suzy) ramReadWord(address uint16) uint16 {
	lo := s.Ram.Read(address)
	hi := s.Ram.Read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// drawSprite renders one sprite control block: the quadrant walk flips
// the draw direction SE->NE->NW->SW exactly as the reference quadrant
// sequence dictates, stepping scanlines within a quadrant and rotating
// to the next quadrant when a line header's offset is 1.
func (s *Suzy) drawSprite(scbAddress uint16) {
	sprctl0 := s.Ram.Read(scbAddress + 0)
	sprctl1 := s.Ram.Read(scbAddress + 1)

	dataPtr := s.ramReadWord(scbAddress + 5)
	hpos := int32(s.ramReadWord(scbAddress + 7))
	vpos := int32(s.ramReadWord(scbAddress + 9))

	var penMap [16]uint8
	for i := 0; i < 8; i++ {
		b := s.Ram.Read(scbAddress + 19 + uint16(i))
		penMap[i<<1] = (b >> 4) & 0x0F
		penMap[i<<1+1] = b & 0x0F
	}

	bpp := int((sprctl0>>6)&0x03) + 1
	literalOnly := sprctl1&0x80 != 0

	dx, dy := int32(1), int32(1)
	curY := vpos
	if dy < 0 {
		curY = vpos - 1
	}

	quadRotations := 0

	for dataPtr != 0 {
		lineBase := dataPtr
		offset := s.Ram.Read(lineBase)
		nextPtr := lineBase + uint16(offset)
		if nextPtr == lineBase {
			break
		}

		curX := hpos
		if dx < 0 {
			curX = hpos - 1
		}

		dataBegin := lineBase + 1
		dataEnd := nextPtr

		if literalOnly {
			s.drawSpriteLineLiteral(dataBegin, dataEnd, curX, curY, dx, &penMap, bpp)
		} else {
			s.drawSpriteLinePacked(dataBegin, dataEnd, curX, curY, dx, &penMap, bpp)
		}

		switch offset {
		case 0:
			return
		case 1:
			if quadRotations&1 == 0 {
				dy = -dy
			} else {
				dx = -dx
			}
			quadRotations++
			curY = vpos
			if dy < 0 {
				curY = vpos - 1
			}
		default:
			curY += dy
		}

		dataPtr = nextPtr
	}
}

func (s *Suzy) drawSpriteLineLiteral(dataBegin, dataEnd uint16, x0, y, dx int32, penMap *[16]uint8, bpp int) {
	var sr shiftRegister
	sr.reset(s.Ram, dataBegin)
	x := x0
	for sr.address < dataEnd {
		pi := sr.getBits(s.Ram, bpp, dataEnd)
		if pi != 0 { // pen index 0 is transparent before remapping
			s.drawPixel(x, y, penMap[pi&0x0F])
		}
		x += dx
	}
}

func (s *Suzy) drawSpriteLinePacked(dataBegin, dataEnd uint16, x0, y, dx int32, penMap *[16]uint8, bpp int) {
	var sr shiftRegister
	sr.reset(s.Ram, dataBegin)
	x := x0
	for sr.address < dataEnd {
		if sr.peek5(s.Ram, dataEnd) == 0 {
			sr.getBits(s.Ram, 5, dataEnd)
			break
		}

		isLiteral := sr.getBits(s.Ram, 1, dataEnd) != 0
		count := sr.getBits(s.Ram, 4, dataEnd) + 1

		if isLiteral {
			for ; count > 0; count-- {
				pi := sr.getBits(s.Ram, bpp, dataEnd)
				if pi != 0 {
					s.drawPixel(x, y, penMap[pi&0x0F])
				}
				x += dx
			}
		} else {
			pi := sr.getBits(s.Ram, bpp, dataEnd)
			pen := penMap[pi&0x0F]
			for ; count > 0; count-- {
				if pi != 0 {
					s.drawPixel(x, y, pen)
				}
				x += dx
			}
		}
	}
}

// drawPixel plots one 4-bit pen value into the packed video buffer,
// translating virtual sprite coordinates to screen coordinates by
// subtracting HOFF/VOFF, and silently clipping anything outside the
// visible 160x102 frame. Pen 0 is always transparent.
func (s *Suzy) drawPixel(x, y int32, pen uint8) {
	if pen&0x0F == 0 {
		return
	}

	effX := x - int32(s.Hoff.value())
	effY := y - int32(s.Voff.value())

	if effX < 0 || effX >= display.ScreenWidth {
		return
	}
	if effY < 0 || effY >= display.ScreenHeight {
		return
	}

	base := s.VidBas.value()
	address := base + uint16(effY*(display.ScreenWidth/2)) + uint16(effX>>1)
	old := s.Ram.Read(address)

	if effX&1 == 0 {
		old = old&0x0F | pen<<4
	} else {
		old = old&0xF0 | pen&0x0F
	}

	s.Ram.Write(address, old)
}
