package render

import (
	"image"
	"log"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/n-ulricksen/nes-emulator/input"
)

// Display owns the game window: the live game frame, an optional debug
// panel (pattern tables, register dump, disassembly listing), and keyboard
// polling feeding into a Controller.
type Display struct {
	gameRgba  *image.RGBA
	debugRgba *image.RGBA

	window      *pixelgl.Window
	gameMatrix  pixel.Matrix
	debugMatrix pixel.Matrix

	debugAtlas          *text.Atlas
	debugRegText        *text.Text
	debugInstText       *text.Text
	debugControllerText *text.Text

	isDebug bool
}

const (
	nesResW    float64 = frameW
	nesResH    float64 = frameH
	scale      float64 = 3
	gameW      float64 = nesResW * scale
	gameH      float64 = nesResH * scale
	screenPosX float64 = 600
	screenPosY float64 = 400

	debugResW float64 = 512
	debugResH float64 = gameH
)

// keyBindings maps pixelgl keys to the lowercase ASCII code Controller and
// KeyLatch expect, one entry per button in input.KeyMap.
var keyBindings = map[pixelgl.Button]byte{
	pixelgl.KeyP:         'p',
	pixelgl.KeyO:         'o',
	pixelgl.KeyB:         'b',
	pixelgl.KeyN:         'n',
	pixelgl.KeyW:         'w',
	pixelgl.KeyS:         's',
	pixelgl.KeyA:         'a',
	pixelgl.KeyD:         'd',
}

func NewDisplay(isDebug bool) *Display {
	rect := image.Rect(0, 0, int(nesResW), int(nesResH))
	gameRgba := image.NewRGBA(rect)

	rect = image.Rect(0, 0, int(debugResW), int(debugResH))
	debugRgba := image.NewRGBA(rect)

	screenW := gameW
	if isDebug {
		screenW += debugResW
	}

	config := pixelgl.WindowConfig{
		Title:    "NES Emulator",
		Bounds:   pixel.R(0, 0, screenW, gameH),
		Position: pixel.V(screenPosX, screenPosY),
		VSync:    true,
	}
	window, err := pixelgl.NewWindow(config)
	if err != nil {
		log.Fatal("unable to create pixelgl window: ", err)
	}

	pic := pixel.PictureDataFromImage(gameRgba)
	gameMatrix := pixel.IM.Moved(pic.Bounds().Center().Scaled(scale))
	gameMatrix = gameMatrix.Scaled(pic.Bounds().Center().Scaled(scale), scale)

	pic = pixel.PictureDataFromImage(debugRgba)
	debugMatrix := pixel.IM.Moved(pic.Bounds().Center().Add(pixel.V(gameW, 0)))

	debugAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	debugRegText := text.New(pixel.V(gameW+8, gameH-40), debugAtlas)
	debugInstText := text.New(pixel.V(gameW+8, gameH-180), debugAtlas)
	debugControllerText := text.New(pixel.V(gameW+300, gameH-40), debugAtlas)

	return &Display{
		gameRgba:            gameRgba,
		debugRgba:           debugRgba,
		window:              window,
		gameMatrix:          gameMatrix,
		debugMatrix:         debugMatrix,
		debugAtlas:          debugAtlas,
		debugRegText:        debugRegText,
		debugInstText:       debugInstText,
		debugControllerText: debugControllerText,
		isDebug:             isDebug,
	}
}

func (d *Display) Closed() bool { return d.window.Closed() }

// DrawFrame replaces the game image with img and presents it, along with the
// debug panel when enabled.
func (d *Display) DrawFrame(img *image.RGBA) {
	d.gameRgba = img
	d.window.Clear(colornames.Black)
	d.updateGameDisplay()

	if d.isDebug {
		d.updateDebugDisplay()
		d.debugRegText.Draw(d.window, pixel.IM)
		d.debugInstText.Draw(d.window, pixel.IM)
		d.debugControllerText.Draw(d.window, pixel.IM)
	}

	d.window.Update()
}

func (d *Display) DrawDebugRGBA(x, y int, img *image.RGBA) {
	for imgY := 0; imgY < img.Rect.Dy(); imgY++ {
		for imgX := 0; imgX < img.Rect.Dx(); imgX++ {
			d.debugRgba.SetRGBA(x+imgX, y+imgY, img.RGBAAt(imgX, imgY))
		}
	}
}

func (d *Display) WriteRegDebugString(s string) {
	d.debugRegText.Clear()
	d.debugRegText.WriteString(s)
}

func (d *Display) WriteInstDebugString(s string) {
	d.debugInstText.Clear()
	d.debugInstText.WriteString(s)
}

func (d *Display) WriteControllerDebugString(s string) {
	d.debugControllerText.Clear()
	d.debugControllerText.WriteString(s)
}

func (d *Display) updateGameDisplay() {
	sprite := getSpriteFromImage(d.gameRgba)
	sprite.Draw(d.window, d.gameMatrix)
}

func (d *Display) updateDebugDisplay() {
	sprite := getSpriteFromImage(d.debugRgba)
	sprite.Draw(d.window, d.debugMatrix)
}

func getSpriteFromImage(img *image.RGBA) *pixel.Sprite {
	pic := pixel.PictureDataFromImage(img)
	return pixel.NewSprite(pic, pic.Bounds())
}

// PollInput reads keyboard state into ctrl (the NES controller mapping) and
// latch (the bare-metal single-key publish point).
func (d *Display) PollInput(ctrl *input.Controller, latch *input.KeyLatch) {
	for key, code := range keyBindings {
		if d.window.JustPressed(key) {
			ctrl.HandleKey(code, true)
			latch.Press(code)
		}
		if d.window.JustReleased(key) {
			ctrl.HandleKey(code, false)
			latch.Release(code)
		}
	}
}
