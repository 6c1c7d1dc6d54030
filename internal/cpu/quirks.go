package cpu

import (
	"fmt"
	"strings"
)

// Quirks selects behaviour that differs from the hardware, for
// comparing traces against cores that took the simpler route. The
// zero value is hardware accurate.
type Quirks struct {
	// IncDecCarry makes 8-bit INC and DEC set Carry when the operand
	// crosses the boundary (0xFF for INC, 0x00 for DEC) and clear it
	// otherwise.
	IncDecCarry bool
	// BitCarry makes BIT n,r set Carry unconditionally.
	BitCarry bool
	// BaselineTiming charges conditional relative jumps 8 cycles
	// whether taken or not, and BIT n,(HL) 16 cycles.
	BaselineTiming bool
}

// ParseQuirks parses a comma separated list of quirk names:
// incdec-carry, bit-carry and baseline-timing.
func ParseQuirks(s string) (Quirks, error) {
	var q Quirks
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case "incdec-carry":
			q.IncDecCarry = true
		case "bit-carry":
			q.BitCarry = true
		case "baseline-timing":
			q.BaselineTiming = true
		default:
			return Quirks{}, fmt.Errorf("unknown quirk %q", name)
		}
	}
	return q, nil
}
