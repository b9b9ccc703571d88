// Package render composes PPU FrameSnapshots into displayable images and
// presents them in a window.
package render

import (
	"image"
	"image/color"

	"github.com/n-ulricksen/nes-emulator/nes"
)

const (
	frameW = 256
	frameH = 240

	spriteCount = 64
)

// Compose decodes a FrameSnapshot into a 256x240 indexed-color image: the
// background layer from the CHR background pattern table, then sprites
// overlaid from OAM (transparent index 0 never overwrites background, the
// Y=255 sentinel skips a sprite entirely). 8x16 sprite mode is unsupported
// and reported rather than silently mis-rendered.
func Compose(snap nes.FrameSnapshot) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, frameW, frameH))

	drawBackground(img, &snap)
	if err := drawSprites(img, &snap); err != nil {
		return nil, err
	}

	return img, nil
}

// drawBackground paints every nametable tile with background palette group
// 0: the snapshot carries only the 960 tile bytes, not the attribute table
// that would select a group per tile.
func drawBackground(img *image.RGBA, snap *nes.FrameSnapshot) {
	tableOffset := int(snap.BgPatternTable) * 0x1000

	const tilesPerRow = 32
	const rows = 30
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < tilesPerRow; tx++ {
			tileIdx := snap.Nametable[ty*tilesPerRow+tx]
			drawTile(img, snap, tableOffset, int(tileIdx), tx*8, ty*8, 0, false, false, false)
		}
	}
}

func drawSprites(img *image.RGBA, snap *nes.FrameSnapshot) error {
	if snap.SpriteSize8x16 {
		return nes.UnsupportedSpriteModeError{}
	}

	tableOffset := int(snap.SpritePatternTable) * 0x1000

	for i := 0; i < spriteCount; i++ {
		base := i * 4
		y := snap.Oam[base]
		if y == 0xFF {
			continue // sentinel: sprite not in use this frame
		}
		tileIdx := snap.Oam[base+1]
		attr := snap.Oam[base+2]
		x := snap.Oam[base+3]

		flipH := attr&0x40 != 0
		flipV := attr&0x80 != 0
		paletteBase := 4 + int(attr&0x03) // sprite palettes live at Palette[16:32]

		drawTile(img, snap, tableOffset, int(tileIdx), int(x), int(y), paletteBase, flipH, flipV, true)
	}

	return nil
}

// drawTile renders one 8x8 tile from two CHR bitplanes at (originX, originY).
// transparentSkip, when set, leaves pixels of color index 0 untouched
// (sprite-over-background compositing); background tiles always paint.
func drawTile(img *image.RGBA, snap *nes.FrameSnapshot, tableOffset, tileIdx, originX, originY, paletteBase int, flipH, flipV, transparentSkip bool) {
	base := tableOffset + tileIdx*16

	for row := 0; row < 8; row++ {
		srcRow := row
		if flipV {
			srcRow = 7 - row
		}

		lo := snap.Chr[base+srcRow]
		hi := snap.Chr[base+srcRow+8]
		if flipH {
			lo = nes.FlipByte(lo)
			hi = nes.FlipByte(hi)
		}

		for col := 0; col < 8; col++ {
			bit := uint(7 - col)
			loBit := (lo >> bit) & 0x01
			hiBit := (hi >> bit) & 0x01
			colorIdx := (hiBit << 1) | loBit

			if transparentSkip && colorIdx == 0 {
				continue
			}

			px, py := originX+col, originY+row
			if px < 0 || px >= frameW || py < 0 || py >= frameH {
				continue
			}

			paletteEntry := snap.Palette[paletteBase*4+int(colorIdx)]
			img.SetRGBA(px, py, colorAt(paletteEntry))
		}
	}
}

func colorAt(entry byte) color.RGBA {
	return nesPalette[entry&0x3F]
}
