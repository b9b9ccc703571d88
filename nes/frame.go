package nes

// FrameSnapshot is the immutable payload the PPU hands off to a renderer once
// per frame. It carries everything render needs to compose a picture without
// reaching back into live PPU state: a 960-byte nametable slice (32x30
// tiles), the raw OAM table, the palette RAM, and a copy of CHR memory so the
// renderer never races the cartridge.
type FrameSnapshot struct {
	BgPatternTable     byte // 0 or 1: which CHR half holds background tiles
	SpritePatternTable byte // 0 or 1: which CHR half holds sprite tiles
	SpriteSize8x16     bool

	Nametable [960]byte
	Oam       [256]byte
	Palette   [32]byte
	Chr       [8192]byte
}
