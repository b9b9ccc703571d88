package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartridgeFromBytesMapper0(t *testing.T) {
	prg := make([]byte, 16*1024)
	prg[0] = 0xEA // NOP
	setResetVector(prg, 0x8000)

	image := buildNesImage(1, 1, prg)
	cart, err := NewCartridgeFromBytes(image)
	require.NoError(t, err)

	data, ok := cart.cpuRead(0x8000)
	assert.True(t, ok)
	assert.Equal(t, byte(0xEA), data)

	// 16KB PRG mirrors across $8000-$FFFF.
	mirrored, ok := cart.cpuRead(0xC000)
	assert.True(t, ok)
	assert.Equal(t, byte(0xEA), mirrored)

	_, ok = cart.cpuRead(0x4000)
	assert.False(t, ok, "addresses below $8000 are not cartridge-mapped")
}

func TestNewCartridgeFromBytesRejectsBadMagic(t *testing.T) {
	image := buildNesImage(1, 1, make([]byte, 16*1024))
	image[0] = 'X'

	_, err := NewCartridgeFromBytes(image)
	require.Error(t, err)

	var cartErr CartridgeError
	require.ErrorAs(t, err, &cartErr)
}

func TestNewCartridgeFromBytesRejectsUnsupportedMapper(t *testing.T) {
	image := buildNesImage(1, 1, make([]byte, 16*1024))
	image[6] = 0x10 // mapper id 1, nibble in Mapper1 flags

	_, err := NewCartridgeFromBytes(image)
	require.Error(t, err)
}

func TestNewCartridgeFromBytesRejectsShortImage(t *testing.T) {
	image := buildNesImage(1, 1, make([]byte, 16*1024))
	truncated := image[:len(image)-100]

	_, err := NewCartridgeFromBytes(truncated)
	require.Error(t, err)
}

func TestNewCartridgeFromBytesRejectsOversizedImage(t *testing.T) {
	image := buildNesImage(1, 1, make([]byte, 16*1024))
	padded := append(image, make([]byte, 100)...)

	_, err := NewCartridgeFromBytes(padded)
	require.Error(t, err)

	var cartErr CartridgeError
	require.ErrorAs(t, err, &cartErr)
}
