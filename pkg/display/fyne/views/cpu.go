package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/pkg/display"
)

// CPU shows the register file, the flags and the interrupt state.
type CPU struct {
	widget.BaseWidget

	regA, regB, regC, regD, regE, regH, regL *widget.Label
	regF                                     *widget.Label
	pc, sp                                   *widget.Label
	state, ime, irq                          *widget.Label
}

func NewCPU() *CPU {
	c := &CPU{
		regA:  mono("0x00"),
		regB:  mono("0x00"),
		regC:  mono("0x00"),
		regD:  mono("0x00"),
		regE:  mono("0x00"),
		regH:  mono("0x00"),
		regL:  mono("0x00"),
		regF:  mono("Z0 N0 H0 C0"),
		pc:    mono("0x0000"),
		sp:    mono("0x0000"),
		state: mono(cpu.Running.String()),
		ime:   mono("0"),
		irq:   mono("IF 0x00 IE 0x00"),
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CPU) Title() string {
	return "CPU"
}

func (c *CPU) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewGridWithColumns(2,
		bold("A:"), c.regA,
		bold("B:"), c.regB,
		bold("C:"), c.regC,
		bold("D:"), c.regD,
		bold("E:"), c.regE,
		bold("H:"), c.regH,
		bold("L:"), c.regL,
		bold("PC:"), c.pc,
		bold("SP:"), c.sp,
		bold("Flags:"), c.regF,
		bold("State:"), c.state,
		bold("IME:"), c.ime,
		bold("Interrupts:"), c.irq,
	))
}

// Update sets the labels to the registers held in s.
func (c *CPU) Update(s display.Snapshot) {
	r := &s.Registers
	c.regA.SetText(fmt.Sprintf("0x%02X", r.A()))
	c.regB.SetText(fmt.Sprintf("0x%02X", r.B()))
	c.regC.SetText(fmt.Sprintf("0x%02X", r.C()))
	c.regD.SetText(fmt.Sprintf("0x%02X", r.D()))
	c.regE.SetText(fmt.Sprintf("0x%02X", r.E()))
	c.regH.SetText(fmt.Sprintf("0x%02X", r.H()))
	c.regL.SetText(fmt.Sprintf("0x%02X", r.L()))
	c.pc.SetText(fmt.Sprintf("0x%04X", r.PC))
	c.sp.SetText(fmt.Sprintf("0x%04X", r.SP))

	f := r.F()
	c.regF.SetText(fmt.Sprintf("Z%d N%d H%d C%d", bit(f&cpu.FlagZero), bit(f&cpu.FlagSubtract), bit(f&cpu.FlagHalfCarry), bit(f&cpu.FlagCarry)))
	c.state.SetText(s.State)
	if s.IME {
		c.ime.SetText("1")
	} else {
		c.ime.SetText("0")
	}
	c.irq.SetText(fmt.Sprintf("IF 0x%02X IE 0x%02X", s.IF, s.IE))
}

func bit(masked uint8) int {
	if masked != 0 {
		return 1
	}
	return 0
}
