package chip8

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: Font table (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program image and general RAM
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address the ROM image is loaded to and where execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest program image that fits between ProgramStart and the end of memory.
	MaxROMSize = MemorySize - ProgramStart

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// opcodeSize is the size of a CHIP-8 instruction in bytes.
	opcodeSize = 2

	// flagRegister is the index of VF.
	flagRegister = 0xF
)

// Index register overflow thresholds for the Fx1E instruction.
// VF is set when the new value of I is greater or equal to the configured threshold.
const (
	// IndexThresholdMemory sets VF when I leaves the 4KB address space.
	IndexThresholdMemory uint16 = MemorySize

	// IndexThresholdLegacy sets VF when I exceeds 0xF00, as some interpreters do.
	IndexThresholdLegacy uint16 = 0x0F01
)
