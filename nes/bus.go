package nes

import (
	"fmt"
	"io"
	"log"

	"github.com/n-ulricksen/nes-emulator/input"
)

// Device is a range-addressed peripheral on the CPU bus: RAM, the PPU's
// register window, the controller's shift register, or cartridge PRG space.
type Device interface {
	Start() uint16
	End() uint16
	Read(addr uint16) byte
	Write(addr uint16, data byte)
}

type ramDevice struct {
	ram [2048]byte
}

func (d *ramDevice) Start() uint16             { return 0x0000 }
func (d *ramDevice) End() uint16               { return 0x1FFF }
func (d *ramDevice) Read(addr uint16) byte     { return d.ram[addr&0x07FF] }
func (d *ramDevice) Write(addr uint16, v byte) { d.ram[addr&0x07FF] = v }

type ppuDevice struct {
	ppu *Ppu
}

func (d *ppuDevice) Start() uint16 { return 0x2000 }
func (d *ppuDevice) End() uint16   { return 0x3FFF }
func (d *ppuDevice) Read(addr uint16) byte {
	return d.ppu.cpuRead(addr & 0x0007)
}
func (d *ppuDevice) Write(addr uint16, v byte) {
	d.ppu.cpuWrite(addr&0x0007, v)
}

type cartDevice struct {
	cart *Cartridge
}

// Cartridge space conventionally starts at $4020 on real hardware (below
// that sits APU I/O and expansion ROM); this device starts at $8000 instead,
// so the bus map stays a small table (RAM, PPU registers, the controller at
// $4016, cartridge) with nothing else to route in between.
func (d *cartDevice) Start() uint16 { return 0x8000 }
func (d *cartDevice) End() uint16   { return 0xFFFF }
func (d *cartDevice) Read(addr uint16) byte {
	if data, ok := d.cart.cpuRead(addr); ok {
		return data
	}
	return 0
}
func (d *cartDevice) Write(addr uint16, v byte) {
	d.cart.cpuWrite(addr, v)
}

// Bus wires the CPU, PPU, controller and cartridge together behind a single
// 16-bit address space.
type Bus struct {
	Cpu        *Cpu6502
	Ppu        *Ppu
	Cart       *Cartridge
	Controller *input.Controller

	devices []Device // ordered low-to-high Start(); scanned high-to-low so a later, narrower registration wins over an earlier, wider one

	ClockCount uint64
	Logger     *log.Logger

	// Err holds a fatal failure: an OAM DMA source that crosses a device
	// boundary (set by performOamDma), or an unknown opcode or stack wrap
	// (latched by the CPU, which never overwrites an error already set).
	// The driver should check this after every Clock and stop on a non-nil
	// value.
	Err error
}

func NewBus() *Bus {
	cpu := NewCpu6502()
	ppu := NewPpu()
	ctrl := input.NewController()

	b := &Bus{
		Cpu:        cpu,
		Ppu:        ppu,
		Controller: ctrl,
		Logger:     log.New(io.Discard, "", 0),
	}
	b.devices = []Device{
		&ramDevice{},
		&ppuDevice{ppu: ppu},
		ctrl,
	}

	cpu.ConnectBus(b)

	return b
}

// InsertCartridge connects a cartridge to both the CPU and PPU buses.
func (b *Bus) InsertCartridge(cart *Cartridge) {
	b.Cart = cart
	b.Ppu.ConnectCartridge(cart)
	b.devices = append(b.devices, &cartDevice{cart: cart})
}

func (b *Bus) deviceFor(addr uint16) Device {
	for i := len(b.devices) - 1; i >= 0; i-- {
		d := b.devices[i]
		if addr >= d.Start() && addr <= d.End() {
			return d
		}
	}
	return nil
}

func (b *Bus) CpuRead(addr uint16) byte {
	if d := b.deviceFor(addr); d != nil {
		return d.Read(addr)
	}
	return 0
}

func (b *Bus) CpuWrite(addr uint16, data byte) {
	if addr == 0x4014 {
		b.performOamDma(data)
		return
	}
	if d := b.deviceFor(addr); d != nil {
		d.Write(addr, data)
	}
}

// ReadRange reads length bytes starting at start, all from a single device.
// Crossing a device boundary is a fatal configuration error: OAM DMA copies
// a CPU memory page verbatim and has no meaning split across two devices.
func (b *Bus) ReadRange(start uint16, length int) ([]byte, error) {
	end := start + uint16(length) - 1
	d := b.deviceFor(start)
	if d == nil || end > d.End() {
		return nil, BusRangeError{Start: start, End: end}
	}

	out := make([]byte, length)
	for i := range out {
		out[i] = d.Read(start + uint16(i))
	}
	return out, nil
}

// performOamDma implements the $4014 write: copy 256 bytes starting at
// page<<8 into PPU OAM.
func (b *Bus) performOamDma(page byte) {
	start := uint16(page) << 8
	data, err := b.ReadRange(start, 256)
	if err != nil {
		b.Err = err
		b.Logger.Printf("oam dma aborted: %v", err)
		return
	}
	b.Ppu.WriteOAMDMA(data)
}

// Reset resets the CPU (posts a pending RESET condition) and zeroes the
// clock count.
func (b *Bus) Reset() {
	b.Cpu.Reset()
	b.ClockCount = 0
}

// Clock advances the bus by one PPU tick, running one CPU cycle every third
// tick (the PPU runs at 3x the CPU's rate) and forwarding a VBlank NMI to
// the CPU the instant the PPU posts one.
func (b *Bus) Clock() {
	b.Ppu.Clock()

	if b.ClockCount%3 == 0 {
		b.Cpu.Cycle()
	}

	if b.Ppu.ConsumeNMI() {
		b.Cpu.NMI()
	}

	b.ClockCount++
}

// Disassembly renders the instruction stream between lo and hi, for a
// headless debug command.
func (b *Bus) Disassembly(lo, hi uint16) map[uint16]string {
	return b.Cpu.Disassemble(lo, hi)
}

// DebugString renders the current CPU register file and the previously
// executed instruction, for a headless debug command.
func (b *Bus) DebugString() string {
	return fmt.Sprintf(
		"Flags: %08b\nPC: %#04X\nA: %#02X\nX: %#02X\nY: %#02X\nSP: %#02X\n\nCycle Count: %d\n\nPrevious Instruction:\n%s\n",
		b.Cpu.Status, b.Cpu.Pc, b.Cpu.A, b.Cpu.X, b.Cpu.Y, b.Cpu.Sp, b.Cpu.CycleCount, b.Cpu.OpDiss,
	)
}

// CheckForNestestErrors reports the two documented nestest error-code RAM
// cells ($02/$03), nonzero only if the golden-run test ROM detected a
// divergence from the reference trace.
func (b *Bus) CheckForNestestErrors() (byte, byte) {
	ram := b.devices[0].(*ramDevice)
	return ram.ram[0x02], ram.ram[0x03]
}
