package types

// HardwareAddress is the address of a memory mapped hardware
// register. Hardware registers live in 0xFF00 - 0xFF7F and 0xFFFF,
// and share the same flat address space as ROM and RAM.
type HardwareAddress = uint16

const (
	// P1 selects the joypad button group and reads its state.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out of (and into) the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port. Writing bit 7 starts a transfer.
	SC HardwareAddress = 0xFF02
	// DIV is incremented every 64 machine cycles. Any write resets it.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC and reloaded
	// from TMA on overflow.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC enables the timer (bit 2) and selects its rate (bits 0-1).
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//  Bit 0: VBlank   (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	//
	//  Bit 7: LCD enable
	//  Bit 6: window tile map (0=9800, 1=9C00)
	//  Bit 5: window enable
	//  Bit 4: BG/window tile data (0=8800, 1=8000)
	//  Bit 3: BG tile map (0=9800, 1=9C00)
	//  Bit 2: sprite size
	//  Bit 1: sprite enable
	//  Bit 0: BG enable
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register. Bits 0-1 hold the current
	// mode, bit 2 the LY==LYC coincidence flag and bits 3-6 select
	// the sources of the LCD STAT interrupt.
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll of the background.
	SCX HardwareAddress = 0xFF43
	// LY holds the current scanline.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts a 160 byte copy from value<<8 into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP maps background colour indices to shades.
	BGP HardwareAddress = 0xFF47
	// OBP0 maps sprite colour indices (palette 0) to shades.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 maps sprite colour indices (palette 1) to shades.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y position.
	WY HardwareAddress = 0xFF4A
	// WX is the window X position plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE holds the enabled interrupts, using the same layout as IF.
	IE HardwareAddress = 0xFFFF
)

const (
	// TileData0 is the unsigned tile data area.
	TileData0 uint16 = 0x8000
	// TileData1 is the signed tile data area, indexed around 0x9000.
	TileData1 uint16 = 0x8800
	// TileMap0 and TileMap1 are the two 32x32 background tile maps.
	TileMap0 uint16 = 0x9800
	TileMap1 uint16 = 0x9C00
	// OAM is the start of sprite attribute memory.
	OAM uint16 = 0xFE00
)
