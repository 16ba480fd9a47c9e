// Package cartridge implements ROM loading and parsing for NES cartridges.
package cartridge

// Mapper001 implements MMC1 (mapper 1), used by Zelda, Metroid, Mega Man 2
// and roughly a quarter of licensed NES carts.
//
// All control writes go through a 5-bit serial shift register: writing a
// byte with bit 7 set resets the register (and forces 16KB PRG mode fixed
// at $C000); writing a byte with bit 7 clear shifts its bit 0 in. On the
// 5th such write the accumulated 5 bits latch into one of four internal
// registers, selected by which address range the write landed in.
type Mapper001 struct {
	cart     *Cartridge
	prgBanks uint8 // number of 16KB PRG banks
	chrBanks uint8 // number of 4KB CHR banks

	shift      uint8
	shiftCount uint8

	control  uint8 // mirroring(1:0), prgMode(3:2), chrMode(4)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgRAMEnabled bool
}

// NewMapper001 creates a new MMC1 mapper.
func NewMapper001(cart *Cartridge) *Mapper001 {
	return &Mapper001{
		cart:          cart,
		prgBanks:      uint8(len(cart.prgROM) / 0x4000),
		chrBanks:      uint8(len(cart.chrROM) / 0x1000),
		shift:         0x10,
		control:       0x0C, // power-on: PRG mode 3 (fix last bank at $C000)
		prgRAMEnabled: true,
	}
}

func (m *Mapper001) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *Mapper001) chrMode() uint8 { return (m.control >> 4) & 0x01 }

// ReadPRG reads from PRG RAM ($6000-$7FFF) or the two switchable/fixed
// 16KB PRG windows at $8000-$BFFF and $C000-$FFFF.
func (m *Mapper001) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x6000 && address < 0x8000:
		if m.prgRAMEnabled {
			return m.cart.sram[address-0x6000]
		}
		return 0

	case address >= 0x8000 && address < 0xC000:
		bank := m.prgLowBank()
		offset := uint32(bank)*0x4000 + uint32(address-0x8000)
		return m.prgByte(offset)

	case address >= 0xC000:
		bank := m.prgHighBank()
		offset := uint32(bank)*0x4000 + uint32(address-0xC000)
		return m.prgByte(offset)
	}
	return 0
}

func (m *Mapper001) prgByte(offset uint32) uint8 {
	if int(offset) < len(m.cart.prgROM) {
		return m.cart.prgROM[offset]
	}
	return 0
}

func (m *Mapper001) prgLowBank() uint8 {
	switch m.prgMode() {
	case 0, 1:
		return m.prgBank &^ 1
	case 2:
		return 0
	default: // 3
		return m.prgBank
	}
}

func (m *Mapper001) prgHighBank() uint8 {
	switch m.prgMode() {
	case 0, 1:
		return (m.prgBank &^ 1) | 1
	case 2:
		return m.prgBank
	default: // 3
		if m.prgBanks == 0 {
			return 0
		}
		return m.prgBanks - 1
	}
}

// WritePRG feeds the MMC1 shift register, or writes PRG RAM directly.
func (m *Mapper001) WritePRG(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 {
		if m.prgRAMEnabled {
			m.cart.sram[address-0x6000] = value
		}
		return
	}
	if address < 0x8000 {
		return
	}

	if value&0x80 != 0 {
		m.shift = 0x10
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift = (m.shift >> 1) | ((value & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	result := m.shift
	m.shift = 0x10
	m.shiftCount = 0

	switch {
	case address < 0xA000:
		m.control = result & 0x1F
	case address < 0xC000:
		m.chrBank0 = result & 0x1F
	case address < 0xE000:
		m.chrBank1 = result & 0x1F
	default:
		m.prgBank = result & 0x0F
		m.prgRAMEnabled = result&0x10 == 0
	}
}

// ReadCHR reads from the two switchable 4KB CHR windows (or one 8KB
// window, in 8KB mode).
func (m *Mapper001) ReadCHR(address uint16) uint8 {
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		return m.cart.chrROM[offset]
	}
	return 0
}

// WriteCHR writes to CHR RAM; CHR ROM carts ignore it.
func (m *Mapper001) WriteCHR(address uint16, value uint8) {
	if !m.cart.hasCHRRAM {
		return
	}
	offset := m.chrOffset(address)
	if int(offset) < len(m.cart.chrROM) {
		m.cart.chrROM[offset] = value
	}
}

func (m *Mapper001) chrOffset(address uint16) uint32 {
	if m.chrMode() == 0 {
		bank := m.chrBank0 &^ 1
		if address >= 0x1000 {
			bank |= 1
		}
		return uint32(bank)*0x1000 + uint32(address&0x0FFF)
	}
	if address < 0x1000 {
		return uint32(m.chrBank0)*0x1000 + uint32(address)
	}
	return uint32(m.chrBank1)*0x1000 + uint32(address-0x1000)
}

// Mirroring reports MMC1's current nametable mirroring, which it can
// change at runtime via the control register's low two bits. Cartridge
// prefers this over its static header mirroring whenever the mapper
// implements MirroringMapper.
func (m *Mapper001) Mirroring() MirrorMode {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleScreen0
	case 1:
		return MirrorSingleScreen1
	case 2:
		return MirrorVertical
	default: // 3
		return MirrorHorizontal
	}
}
