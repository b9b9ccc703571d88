package nes

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"
)

// addrModeOf maps an addressing-mode function to its AddressingMode enum
// value by code pointer, since Instruction only carries the function
// itself. Built once from a throwaway receiver; the amXXX methods don't
// touch receiver state before returning a pointer identity.
var (
	addrModeOnce  sync.Once
	addrModeNames map[uintptr]AddressingMode
)

func addrModeOf(f func() byte) AddressingMode {
	addrModeOnce.Do(func() {
		c := &Cpu6502{}
		addrModeNames = map[uintptr]AddressingMode{
			ptrOf(c.amIMP): IMP,
			ptrOf(c.amIMM): IMM,
			ptrOf(c.amREL): REL,
			ptrOf(c.amZP0): ZP0,
			ptrOf(c.amZPX): ZPX,
			ptrOf(c.amZPY): ZPY,
			ptrOf(c.amABS): ABS,
			ptrOf(c.amABX): ABX,
			ptrOf(c.amABY): ABY,
			ptrOf(c.amIND): IND,
			ptrOf(c.amIZX): IZX,
			ptrOf(c.amIZY): IZY,
		}
	})
	return addrModeNames[ptrOf(f)]
}

func ptrOf(f func() byte) uintptr {
	return reflect.ValueOf(f).Pointer()
}

// Disassemble renders every instruction between startAddr and endAddr
// (inclusive) into a map of address to human-readable text.
//
// Much help from https://github.com/OneLoneCoder/olcNES
func (cpu *Cpu6502) Disassemble(startAddr, endAddr uint16) map[uint16]string {
	var lineDiss bytes.Buffer
	var lo, hi byte

	// Needs to be bigger than uint16, to determine when larger than endAddr.
	var addr uint32 = uint32(startAddr)

	disassembly := make(map[uint16]string)

	for addr <= uint32(endAddr) {
		lineAddr := uint16(addr)
		lineDiss.WriteString(fmt.Sprintf("$%04X: ", lineAddr))

		opcode := cpu.read(uint16(addr))
		addr++
		inst := cpu.InstLookup[opcode]
		lineDiss.WriteString(fmt.Sprintf("%s ", inst.Name))

		switch addrModeOf(inst.AddrMode) {
		case IMP:
			lineDiss.WriteString("{IMP}")
		case IMM:
			value := cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("#$%02X {IMM}", value))
		case REL:
			value := cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%02X [%04X] {REL}", value, uint16(value)+uint16(addr)))
		case ZP0:
			lo = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%02X {ZP0}", lo))
		case ZPX:
			lo = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%02X, X {ZPX}", lo))
		case ZPY:
			lo = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%02X, Y {ZPY}", lo))
		case ABS:
			lo = cpu.read(uint16(addr))
			addr++
			hi = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%04X {ABS}", uint16(hi)<<8|uint16(lo)))
		case ABX:
			lo = cpu.read(uint16(addr))
			addr++
			hi = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%04X, X {ABX}", uint16(hi)<<8|uint16(lo)))
		case ABY:
			lo = cpu.read(uint16(addr))
			addr++
			hi = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("$%04X, Y {ABY}", uint16(hi)<<8|uint16(lo)))
		case IND:
			lo = cpu.read(uint16(addr))
			addr++
			hi = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("($%04X) {IND}", uint16(hi)<<8|uint16(lo)))
		case IZX:
			lo = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("($%02X, X) {IZX}", lo))
		case IZY:
			lo = cpu.read(uint16(addr))
			addr++
			lineDiss.WriteString(fmt.Sprintf("($%02X), Y {IZY}", lo))
		}

		disassembly[lineAddr] = lineDiss.String()
		lineDiss.Reset()
	}

	return disassembly
}
