// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/io"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Button represents a physical button on the Game Boy. The lower
// four buttons are read through the action group, the upper four
// through the direction group.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

var buttonNames = [8]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down"}

// ButtonName returns the name of the button.
func ButtonName(b Button) string {
	if int(b) >= len(buttonNames) {
		return "Unknown"
	}
	return buttonNames[b]
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// Pressed holds a 1 for every button currently held down,
	// indexed by Button.
	Pressed uint8

	selection uint8
	b         *io.Bus
}

// New returns a new joypad state with neither group selected.
func New(b *io.Bus) *State {
	s := &State{
		b:         b,
		selection: types.Bit4 | types.Bit5,
	}
	b.ReserveAddress(types.P1, func(v byte) byte {
		s.selection = v & (types.Bit4 | types.Bit5)
		return s.value()
	})
	b.Set(types.P1, s.value())

	return s
}

// value returns P1 as seen by the CPU.
func (s *State) value() uint8 {
	d := uint8(0xC0) | s.selection
	if s.selection&types.Bit4 == 0 {
		d |= s.Pressed >> 4 & 0xF
	}
	if s.selection&types.Bit5 == 0 {
		d |= s.Pressed & 0xF
	}

	// pressed buttons read as 0
	return d ^ 0xF
}

// Press presses a button and requests the joypad interrupt.
func (s *State) Press(button Button) {
	s.Pressed |= types.Bit0 << button
	s.b.Set(types.P1, s.value())
	s.b.SetBit(types.IF, interrupts.JoypadFlag)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.Pressed &^= types.Bit0 << button
	s.b.Set(types.P1, s.value())
}
