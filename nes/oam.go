package nes

const oamSpriteCount = 64

type objectAttributeMemory []oamSprite

// oamSprite represents one entry, or sprite, in the Object Attribute memory.
type oamSprite struct {
	y         byte // Y position of the sprite
	id        byte // pattern memory ID
	attribute byte // flag specifying rendering attributes
	x         byte // X position of the sprite
}

func newObjectAttributeMemory() objectAttributeMemory {
	oam := make(objectAttributeMemory, oamSpriteCount)
	oam.clear()
	return oam
}

func (oam objectAttributeMemory) read(addr byte) byte {
	spriteIdx := int(addr) / 4
	propIdx := int(addr) % 4

	sprite := oam[spriteIdx]

	switch propIdx {
	case 0:
		return sprite.y
	case 1:
		return sprite.id
	case 2:
		return sprite.attribute
	default:
		return sprite.x
	}
}

func (oam objectAttributeMemory) write(addr byte, data byte) {
	spriteIdx := int(addr) / 4
	propIdx := int(addr) % 4

	switch propIdx {
	case 0:
		oam[spriteIdx].y = data
	case 1:
		oam[spriteIdx].id = data
	case 2:
		oam[spriteIdx].attribute = data
	case 3:
		oam[spriteIdx].x = data
	}
}

// dmaLoad overwrites all 256 OAM bytes from a CPU page copy, the effect of a
// write to $4014.
func (oam objectAttributeMemory) dmaLoad(page []byte) {
	for i, b := range page {
		oam.write(byte(i), b)
	}
}

// raw packs OAM into the 256-byte layout the renderer and save state expect.
func (oam objectAttributeMemory) raw() [256]byte {
	var out [256]byte
	for i := range out {
		out[i] = oam.read(byte(i))
	}
	return out
}

func (oam objectAttributeMemory) clear() {
	for i := range oam {
		oam[i].y = 0xFF
		oam[i].id = 0xFF
		oam[i].attribute = 0xFF
		oam[i].x = 0xFF
	}
}

func copyOamEntry(to, from *oamSprite) {
	to.y = from.y
	to.id = from.id
	to.attribute = from.attribute
	to.x = from.x
}
