package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-ulricksen/nes-emulator/nes"
)

// solidTileChr sets tile 0 in the given pattern table half (0 = $0000,
// 1 = $1000) to color index 3 (both bitplane bytes all-ones) across all 8
// rows, the simplest non-transparent tile to assert pixel colors against.
func solidTileChr(chr *[8192]byte, table int) {
	base := table * 0x1000
	for row := 0; row < 8; row++ {
		chr[base+row] = 0xFF
		chr[base+row+8] = 0xFF
	}
}

func TestComposeBackgroundUsesPaletteGroupZero(t *testing.T) {
	var snap nes.FrameSnapshot
	solidTileChr(&snap.Chr, 0)
	snap.Palette[3] = 0x01 // group 0, color index 3
	for i := 0; i < spriteCount; i++ {
		snap.Oam[i*4] = 0xFF // unused sentinel, so no sprite covers (0, 0)
	}

	img, err := Compose(snap)
	require.NoError(t, err)

	assert.Equal(t, colorAt(0x01), img.RGBAAt(0, 0))
}

func TestComposeSpriteOverlay(t *testing.T) {
	var snap nes.FrameSnapshot
	solidTileChr(&snap.Chr, 0)
	snap.Palette[4*4+3] = 0x02 // sprite palette group 0, color index 3

	// One sprite at (10, 20), tile 0, no flip, no transparency skip issue
	// since every pixel is color index 3.
	snap.Oam[0] = 20   // y
	snap.Oam[1] = 0    // tile
	snap.Oam[2] = 0x00 // attribute: palette 0, no flip
	snap.Oam[3] = 10   // x
	for i := 1; i < spriteCount; i++ {
		snap.Oam[i*4] = 0xFF // unused sentinel
	}

	img, err := Compose(snap)
	require.NoError(t, err)

	assert.Equal(t, colorAt(0x02), img.RGBAAt(10, 20))
}

func TestComposeSkipsSentinelSprites(t *testing.T) {
	var snap nes.FrameSnapshot
	for i := 0; i < spriteCount; i++ {
		snap.Oam[i*4] = 0xFF
	}

	_, err := Compose(snap)
	assert.NoError(t, err)
}

func TestCompose8x16SpritesUnsupported(t *testing.T) {
	var snap nes.FrameSnapshot
	snap.SpriteSize8x16 = true

	_, err := Compose(snap)
	require.Error(t, err)
	assert.IsType(t, nes.UnsupportedSpriteModeError{}, err)
}
