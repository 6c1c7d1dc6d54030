// Package io provides the flat 64KB address space shared by the
// CPU and the hardware. The same backing array acts as RAM, ROM
// and the hardware register file; hardware that needs to react to
// CPU writes reserves the address with a WriteHandler.
package io

import "fmt"

// Bus is the 64KB address space.
type Bus struct {
	data [0x10000]byte

	writeHandlers [0x100]WriteHandler
}

// WriteHandler is a function that handles a CPU write to a hardware
// register. It returns the value that is actually stored.
type WriteHandler func(byte) byte

// NewBus returns a zeroed address space.
func NewBus() *Bus {
	return &Bus{}
}

// ReserveAddress installs a write handler for a hardware register
// in the range 0xFF00 - 0xFFFF.
func (b *Bus) ReserveAddress(addr uint16, handler WriteHandler) {
	if addr < 0xFF00 {
		panic(fmt.Sprintf("address %04X is not a hardware register", addr))
	}
	if b.writeHandlers[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[addr&0xFF] = handler
}

// Read returns the byte at addr as seen by the CPU.
func (b *Bus) Read(addr uint16) byte {
	return b.data[addr]
}

// Write stores value at addr on behalf of the CPU, passing it
// through the write handler of a reserved hardware register.
func (b *Bus) Write(addr uint16, value byte) {
	if addr >= 0xFF00 {
		if h := b.writeHandlers[addr&0xFF]; h != nil {
			value = h(value)
		}
	}
	b.data[addr] = value
}

// Read16 returns the little-endian word at addr. The high byte is
// read from addr+1, wrapping at the end of the address space.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read(addr+1))<<8 | uint16(b.Read(addr))
}

// Write16 stores value little-endian: the low byte at addr and the
// high byte at addr+1.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, uint8(value))
	b.Write(addr+1, uint8(value>>8))
}

// Get gets the value at the specified memory address.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value, and is used by
// the hardware to update its own registers.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// SetBit ORs mask into the byte at addr.
func (b *Bus) SetBit(addr uint16, mask byte) {
	b.data[addr] |= mask
}

// ClearBit clears the bits of mask in the byte at addr.
func (b *Bus) ClearBit(addr uint16, mask byte) {
	b.data[addr] &^= mask
}

// TestBit reports whether any bit of mask is set at addr.
func (b *Bus) TestBit(addr uint16, mask byte) bool {
	return b.data[addr]&mask != 0
}

// Load copies data verbatim into the address space starting at
// offset, bypassing write handlers. Bytes past the end of the
// address space are dropped; the number of bytes copied is returned.
func (b *Bus) Load(offset uint16, data []byte) int {
	return copy(b.data[offset:], data)
}

// Slice returns a copy of the len bytes starting at addr.
func (b *Bus) Slice(addr uint16, len int) []byte {
	out := make([]byte, len)
	copy(out, b.data[addr:])
	return out
}
