package types

// Register is a single 8-bit CPU register.
type Register = uint8

// RegisterPair is two 8-bit registers addressed jointly as a
// 16-bit word. The high register always occupies bits 8-15 and
// the low register bits 0-7; the halves are derived with shifts
// and masks so the layout never depends on field order.
type RegisterPair uint16

// Uint16 returns the pair as a single 16-bit word.
func (r RegisterPair) Uint16() uint16 {
	return uint16(r)
}

// SetUint16 sets both halves of the pair at once.
func (r *RegisterPair) SetUint16(value uint16) {
	*r = RegisterPair(value)
}

// High returns the register held in bits 8-15.
func (r RegisterPair) High() Register {
	return Register(r >> 8)
}

// Low returns the register held in bits 0-7.
func (r RegisterPair) Low() Register {
	return Register(r)
}

// SetHigh replaces bits 8-15, leaving the low register intact.
func (r *RegisterPair) SetHigh(value Register) {
	*r = RegisterPair(uint16(value)<<8 | uint16(*r)&0x00FF)
}

// SetLow replaces bits 0-7, leaving the high register intact.
func (r *RegisterPair) SetLow(value Register) {
	*r = RegisterPair(uint16(*r)&0xFF00 | uint16(value))
}

// Registers is the CPU register file: four register pairs plus
// the stack pointer and program counter.
type Registers struct {
	AF, BC, DE, HL RegisterPair
	SP, PC         uint16
}

func (r *Registers) A() Register { return r.AF.High() }
func (r *Registers) F() Register { return r.AF.Low() }
func (r *Registers) B() Register { return r.BC.High() }
func (r *Registers) C() Register { return r.BC.Low() }
func (r *Registers) D() Register { return r.DE.High() }
func (r *Registers) E() Register { return r.DE.Low() }
func (r *Registers) H() Register { return r.HL.High() }
func (r *Registers) L() Register { return r.HL.Low() }

func (r *Registers) SetA(v Register) { r.AF.SetHigh(v) }
func (r *Registers) SetB(v Register) { r.BC.SetHigh(v) }
func (r *Registers) SetC(v Register) { r.BC.SetLow(v) }
func (r *Registers) SetD(v Register) { r.DE.SetHigh(v) }
func (r *Registers) SetE(v Register) { r.DE.SetLow(v) }
func (r *Registers) SetH(v Register) { r.HL.SetHigh(v) }
func (r *Registers) SetL(v Register) { r.HL.SetLow(v) }

// SetF sets the flag register. Only bits 4-7 exist in hardware,
// so the low nibble always reads back as zero.
func (r *Registers) SetF(v Register) { r.AF.SetLow(v & 0xF0) }

// RegisterIndex identifies an 8-bit register by its position in
// the opcode encoding. Index 6 encodes (HL) and is resolved by the
// CPU, not the register file.
type RegisterIndex = uint8

const (
	RegB RegisterIndex = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLIndirect
	RegA
)

// Get returns the 8-bit register at index i. It panics for
// RegHLIndirect, which is a memory operand.
func (r *Registers) Get(i RegisterIndex) Register {
	switch i {
	case RegB:
		return r.B()
	case RegC:
		return r.C()
	case RegD:
		return r.D()
	case RegE:
		return r.E()
	case RegH:
		return r.H()
	case RegL:
		return r.L()
	case RegA:
		return r.A()
	}
	panic("types: register index is a memory operand")
}

// Set writes the 8-bit register at index i. It panics for
// RegHLIndirect, which is a memory operand.
func (r *Registers) Set(i RegisterIndex, v Register) {
	switch i {
	case RegB:
		r.SetB(v)
	case RegC:
		r.SetC(v)
	case RegD:
		r.SetD(v)
	case RegE:
		r.SetE(v)
	case RegH:
		r.SetH(v)
	case RegL:
		r.SetL(v)
	case RegA:
		r.SetA(v)
	default:
		panic("types: register index is a memory operand")
	}
}
