package cpu

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and left once an interrupt is
	// pending, regardless of IME.
	ModeHalt
	// ModeStop is entered by STOP, and left by a joypad request.
	ModeStop
	// ModeHaltBug is entered when HALT executes with IME clear and
	// an interrupt already pending. The next opcode is fetched
	// without incrementing PC.
	ModeHaltBug
	// ModeLocked is entered after executing an undefined opcode.
	// The CPU no longer fetches instructions.
	ModeLocked
)

// State is the externally visible run-state of the CPU.
type State int

const (
	Running State = iota
	Halted
	Stopped
	Locked
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the register pairs along with SP and PC.
	types.Registers

	// Clock holds the cost of the most recent Step.
	Clock types.Clock
	// Quirks selects the legacy alternatives to the hardware behaviour.
	Quirks Quirks
	// Debug enables tracing of every executed instruction.
	Debug bool

	b   *io.Bus
	irq *interrupts.Controller
	log log.Logger

	mode     mode
	imeDelay bool

	cycles   uint8
	branched bool
	opcodePC uint16
	err      error
}

// NewCPU creates a new CPU that executes from b, dispatching the
// interrupts raised through irq.
func NewCPU(b *io.Bus, irq *interrupts.Controller, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &CPU{
		b:   b,
		irq: irq,
		log: l,
	}
}

// State returns the current run-state.
func (c *CPU) State() State {
	switch c.mode {
	case ModeHalt:
		return Halted
	case ModeStop:
		return Stopped
	case ModeLocked:
		return Locked
	}
	return Running
}

// Err returns the error that locked the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Step advances the CPU by one instruction, or by one interrupt
// dispatch, and returns its cost in clock cycles. The cost is also
// recorded in Clock. A halted, stopped or locked CPU idles for 4
// clock cycles.
func (c *CPU) Step() uint8 {
	c.cycles = 0
	c.wake()

	switch c.mode {
	case ModeHalt, ModeStop, ModeLocked:
		c.cycles = 4
	default:
		if !c.serviceInterrupt() {
			c.execute()
		}
	}

	c.Clock.Set(c.cycles)
	return c.cycles
}

// wake leaves the low power modes once their wake condition holds.
func (c *CPU) wake() {
	switch c.mode {
	case ModeHalt:
		if c.irq.Pending() != 0 {
			c.mode = ModeNormal
		}
	case ModeStop:
		if c.b.TestBit(types.IF, interrupts.JoypadFlag) {
			c.mode = ModeNormal
		}
	}
}

// serviceInterrupt dispatches the highest priority pending
// interrupt, if IME allows it.
func (c *CPU) serviceInterrupt() bool {
	vector, flag, ok := c.irq.Vector()
	if !ok {
		return false
	}
	if c.Debug {
		c.log.Debugf("0x%04X\tinterrupt %s -> 0x%04X", c.PC, interrupts.Name(flag), vector)
	}

	c.push(c.PC)
	c.PC = vector
	c.cycles = 20
	return true
}

// execute fetches, decodes and executes a single instruction.
func (c *CPU) execute() {
	c.opcodePC = c.PC
	opcode := c.b.Read(c.PC)
	if c.mode == ModeHaltBug {
		c.mode = ModeNormal
	} else {
		c.PC++
	}

	// EI takes effect after the instruction following it
	if c.imeDelay {
		c.imeDelay = false
		c.irq.IME = true
	}

	c.run(InstructionSet[opcode], opcode)
}

// run executes a table entry and charges its cost.
func (c *CPU) run(instruction Instruction, opcode uint8) {
	if c.Debug {
		c.log.Debugf("0x%04X\t0x%02X\t%s", c.opcodePC, opcode, instruction.name)
	}
	if instruction.fn == nil {
		c.log.Errorf("unimplemented instruction 0x%02X (%s) at 0x%04X", opcode, instruction.name, c.opcodePC)
		c.cycles += 4
		return
	}

	c.branched = false
	instruction.fn(c)
	if c.branched {
		c.cycles += instruction.branch
	} else {
		c.cycles += instruction.cycles
	}
}

// readOperand reads the next byte of the instruction stream.
func (c *CPU) readOperand() uint8 {
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next little-endian word of the
// instruction stream.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// branch marks the current conditional instruction as taken.
func (c *CPU) branch() {
	c.branched = true
}

// operand returns the 8-bit operand with the given register index,
// resolving index 6 through (HL).
func (c *CPU) operand(index types.RegisterIndex) uint8 {
	if index == types.RegHLIndirect {
		return c.b.Read(c.HL.Uint16())
	}
	return c.Registers.Get(index)
}

// setOperand writes the 8-bit operand with the given register index.
func (c *CPU) setOperand(index types.RegisterIndex, value uint8) {
	if index == types.RegHLIndirect {
		c.b.Write(c.HL.Uint16(), value)
		return
	}
	c.Registers.Set(index, value)
}

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
