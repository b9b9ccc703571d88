// Package driver pulls the parts of the teacher's old Bus.Run loop that are
// external-collaborator concerns — wall-clock frame pacing, input polling,
// render presentation, save-state load/store — up out of package nes, which
// keeps only the core one-CPU-tick-per-three-PPU-ticks cadence.
package driver

import (
	"log"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"

	"github.com/n-ulricksen/nes-emulator/input"
	"github.com/n-ulricksen/nes-emulator/nes"
	"github.com/n-ulricksen/nes-emulator/render"
)

const defaultFPS = 60.0

// Config configures a Driver run: which ROM to load, whether to show the
// debug panel and log instruction traces, and an optional save-state path
// to resume from / persist to.
type Config struct {
	RomPath       string
	Debug         bool
	Logging       bool
	SaveStatePath string
	FPS           float64
}

// Driver owns one running NES: a Bus, the keyboard latch for bare-metal
// programs, and the window/clock loop.
type Driver struct {
	cfg   Config
	Bus   *nes.Bus
	Latch input.KeyLatch
}

// New loads cfg.RomPath into a fresh Bus, optionally resuming from
// cfg.SaveStatePath, and resets the CPU.
func New(cfg Config) (*Driver, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}

	bus := nes.NewBus()
	if cfg.Logging {
		f, err := os.OpenFile("./logs/cpu.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			bus.Cpu.Logger = log.New(f, "", 0)
			bus.Logger = log.New(f, "bus: ", log.LstdFlags)
		}
	}

	cart, err := nes.NewCartridge(cfg.RomPath)
	if err != nil {
		return nil, err
	}
	bus.InsertCartridge(cart)
	bus.Reset()

	d := &Driver{cfg: cfg, Bus: bus}

	if cfg.SaveStatePath != "" {
		if f, err := os.Open(cfg.SaveStatePath); err == nil {
			defer f.Close()
			if err := bus.LoadState(f); err != nil {
				log.Printf("discarding save state %s: %v", cfg.SaveStatePath, err)
			}
		}
	}

	return d, nil
}

// SaveState persists current emulator state to cfg.SaveStatePath.
func (d *Driver) SaveState() error {
	if d.cfg.SaveStatePath == "" {
		return nil
	}
	f, err := os.Create(d.cfg.SaveStatePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Bus.SaveState(f)
}

// Run opens a window and drives the NES until it's closed or a fatal bus
// error occurs. pixelgl requires its Run to own the OS thread, so this
// blocks the caller's goroutine.
func (d *Driver) Run() {
	pixelgl.Run(d.run)
}

func (d *Driver) run() {
	display := render.NewDisplay(d.cfg.Debug)

	go d.emulate()

	frameInterval := time.Duration(float64(time.Second) / d.cfg.FPS)

	for !display.Closed() {
		start := time.Now()

		select {
		case snap := <-d.Bus.Ppu.Frames():
			if img, err := render.Compose(snap); err != nil {
				log.Println("render error, stopping:", err)
				return
			} else {
				if d.cfg.Debug {
					display.WriteRegDebugString(d.Bus.DebugString())
				}
				display.DrawFrame(img)
			}
		default:
		}

		display.PollInput(d.Bus.Controller, &d.Latch)

		if d.Bus.Err != nil {
			log.Println("bus error, stopping:", d.Bus.Err)
			return
		}

		if elapsed := time.Since(start); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
		if d.cfg.Debug {
			nes.TimeTrack(start)
		}
	}

	if err := d.SaveState(); err != nil {
		log.Println("save state:", err)
	}
}

// emulate runs the core clock loop with no wall-clock pacing of its own —
// pacing against the host clock belongs to the render loop above, not the
// timing-sensitive core.
func (d *Driver) emulate() {
	for {
		d.Bus.Clock()
		if d.Bus.Err != nil {
			return
		}
	}
}
