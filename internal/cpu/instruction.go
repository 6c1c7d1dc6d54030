package cpu

import "fmt"

// Instruction describes a single entry of an opcode table.
type Instruction struct {
	name   string     // mnemonic
	length uint8      // bytes including the opcode (and the CB prefix)
	cycles uint8      // clock cycles when not branching
	branch uint8      // clock cycles when a conditional branch is taken
	fn     func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the cost of the instruction in clock cycles when it
// does not branch.
func (i Instruction) Cycles() uint8 { return i.cycles }

// BranchCycles returns the cost of a conditional instruction when
// its condition holds. Unconditional instructions report Cycles.
func (i Instruction) BranchCycles() uint8 { return i.branch }

// Defined reports whether the entry has a handler.
func (i Instruction) Defined() bool { return i.fn != nil }

// InstructionOpt configures an Instruction being defined.
type InstructionOpt func(*Instruction)

// Length sets the encoded length of the instruction.
func Length(n uint8) InstructionOpt {
	return func(i *Instruction) { i.length = n }
}

// Cycles sets the cost of the instruction in clock cycles.
func Cycles(t uint8) InstructionOpt {
	return func(i *Instruction) { i.cycles = t }
}

// Branch sets the cost of a conditional instruction when taken.
func Branch(t uint8) InstructionOpt {
	return func(i *Instruction) { i.branch = t }
}

var (
	// InstructionSet holds the 256 base instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions following the
	// 0xCB prefix.
	InstructionSetCB [256]Instruction
)

func newInstruction(name string, fn func(*CPU), opts []InstructionOpt) Instruction {
	i := Instruction{name: name, length: 1, cycles: 4, fn: fn}
	for _, opt := range opts {
		opt(&i)
	}
	if i.branch == 0 {
		i.branch = i.cycles
	}
	return i
}

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode. Unless overridden the instruction is 1
// byte long and costs 4 cycles.
func DefineInstruction(opcode uint8, name string, fn func(*CPU), opts ...InstructionOpt) {
	InstructionSet[opcode] = newInstruction(name, fn, opts)
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
// CB instructions are 2 bytes long and cost 8 cycles unless
// overridden; both include the prefix.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU), opts ...InstructionOpt) {
	InstructionSetCB[opcode] = newInstruction(name, fn, append([]InstructionOpt{Length(2), Cycles(8)}, opts...))
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.readOperand()
		c.mode = ModeStop
	}, Length(2))
	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.SetA(0xFF ^ c.A())
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.irq.IME && c.irq.Pending() != 0 {
			c.mode = ModeHaltBug
		} else {
			c.mode = ModeHalt
		}
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.irq.IME = false
		c.imeDelay = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.imeDelay = true })
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {
		opcode := c.readOperand()
		instruction := InstructionSetCB[opcode]
		if c.Debug {
			c.log.Debugf("0x%04X\t0xCB%02X\t%s", c.opcodePC, opcode, instruction.name)
		}
		instruction.fn(c)
		c.cycles += instruction.cycles
	}, Length(2), Cycles(0))

	for _, opcode := range UndefinedOpcodes {
		DefineInstruction(opcode, fmt.Sprintf("undefined 0x%02X", opcode), undefinedOpcode)
	}
}
