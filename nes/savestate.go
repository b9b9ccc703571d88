package nes

import (
	"encoding/gob"
	"io"
)

// saveState is the gob-serializable snapshot of everything SaveState/
// LoadState round-trip: CPU registers, RAM, and PPU register/VRAM state.
// The cartridge image itself is not included — a load assumes the same ROM
// is already inserted.
//
// encoding/gob is stdlib; no example in this corpus wires a binary
// serialization library for a need this narrow (see DESIGN.md).
type saveState struct {
	CpuPc         uint16
	CpuSp         byte
	CpuA          byte
	CpuX          byte
	CpuY          byte
	CpuStatus     byte
	CpuCycles     byte
	CpuCycleCount uint64
	CpuPending    int

	Ram [2048]byte

	PpuTblName    [2][1024]byte
	PpuPalette    [32]byte
	PpuOam        [256]byte
	PpuCtrl       byte
	PpuMask       byte
	PpuStatus     byte
	PpuAddrLatch  bool
	PpuVramAddr   uint16
	PpuTempAddr   uint16
	PpuFineX      byte
	PpuDataBuffer byte
	PpuTicks      uint32

	ClockCount uint64
}

// SaveState writes a snapshot of CPU, RAM, and PPU state. The inserted
// cartridge is not captured; LoadState assumes the same ROM is present.
func (b *Bus) SaveState(w io.Writer) error {
	ram := b.devices[0].(*ramDevice)

	s := saveState{
		CpuPc:         b.Cpu.Pc,
		CpuSp:         b.Cpu.Sp,
		CpuA:          b.Cpu.A,
		CpuX:          b.Cpu.X,
		CpuY:          b.Cpu.Y,
		CpuStatus:     b.Cpu.Status,
		CpuCycles:     b.Cpu.Cycles,
		CpuCycleCount: b.Cpu.CycleCount,
		CpuPending:    int(b.Cpu.pending),

		Ram: ram.ram,

		PpuTblName:    b.Ppu.tblName,
		PpuPalette:    b.Ppu.tblPallete,
		PpuOam:        b.Ppu.oam.raw(),
		PpuCtrl:       byte(b.Ppu.ctrl),
		PpuMask:       byte(b.Ppu.mask),
		PpuStatus:     byte(b.Ppu.status),
		PpuAddrLatch:  b.Ppu.addrLatch,
		PpuVramAddr:   b.Ppu.vramAddr.value(),
		PpuTempAddr:   b.Ppu.tempAddr.value(),
		PpuFineX:      b.Ppu.fineX,
		PpuDataBuffer: b.Ppu.dataBuffer,
		PpuTicks:      b.Ppu.ticks,

		ClockCount: b.ClockCount,
	}

	return gob.NewEncoder(w).Encode(&s)
}

// LoadState restores a snapshot written by SaveState.
func (b *Bus) LoadState(r io.Reader) error {
	var s saveState
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return err
	}

	ram := b.devices[0].(*ramDevice)
	ram.ram = s.Ram

	b.Cpu.Pc = s.CpuPc
	b.Cpu.Sp = s.CpuSp
	b.Cpu.A = s.CpuA
	b.Cpu.X = s.CpuX
	b.Cpu.Y = s.CpuY
	b.Cpu.Status = s.CpuStatus
	b.Cpu.Cycles = s.CpuCycles
	b.Cpu.CycleCount = s.CpuCycleCount
	b.Cpu.pending = pendingInterrupt(s.CpuPending)

	b.Ppu.tblName = s.PpuTblName
	b.Ppu.tblPallete = s.PpuPalette
	for i, v := range s.PpuOam {
		b.Ppu.oam.write(byte(i), v)
	}
	b.Ppu.ctrl = PpuReg(s.PpuCtrl)
	b.Ppu.mask = PpuReg(s.PpuMask)
	b.Ppu.status = PpuReg(s.PpuStatus)
	b.Ppu.addrLatch = s.PpuAddrLatch
	b.Ppu.vramAddr = PpuLoopyReg(s.PpuVramAddr)
	b.Ppu.tempAddr = PpuLoopyReg(s.PpuTempAddr)
	b.Ppu.fineX = s.PpuFineX
	b.Ppu.dataBuffer = s.PpuDataBuffer
	b.Ppu.ticks = s.PpuTicks

	b.ClockCount = s.ClockCount

	return nil
}
