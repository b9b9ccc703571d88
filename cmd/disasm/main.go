// Command disasm prints a styled instruction listing and live register dump
// for an iNES ROM, without opening a GUI window — the headless counterpart
// to the old debug overlay baked into the game window.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/n-ulricksen/nes-emulator/nes"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	regStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// resetFlushTicks is enough bus ticks to run the 7-cycle reset sequence to
// completion (7 CPU cycles * 3 PPU ticks/cycle, plus margin).
const resetFlushTicks = 30

func main() {
	rom := flag.String("rom", "", "path to an iNES ROM")
	steps := flag.Int("steps", 0, "bus ticks to run before dumping registers (0 = disassemble only)")
	lo := flag.Uint64("lo", 0x8000, "disassembly range start")
	hi := flag.Uint64("hi", 0xFFFF, "disassembly range end")
	flag.Parse()

	if *rom == "" {
		fmt.Fprintln(os.Stderr, "usage: disasm -rom <path> [-steps N] [-lo addr] [-hi addr]")
		os.Exit(1)
	}

	cart, err := nes.NewCartridge(*rom)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bus := nes.NewBus()
	bus.InsertCartridge(cart)
	bus.Reset()
	for i := 0; i < resetFlushTicks; i++ {
		bus.Clock()
	}

	fmt.Println(headerStyle.Render("disassembly"))
	printLines(bus.Disassembly(uint16(*lo), uint16(*hi)))

	if *steps > 0 {
		for i := 0; i < *steps; i++ {
			bus.Clock()
		}
		fmt.Println()
		fmt.Println(headerStyle.Render("registers"))
		fmt.Println(regStyle.Render(bus.DebugString()))
	}
}

func printLines(lines map[uint16]string) {
	addrs := make([]uint16, 0, len(lines))
	for a := range lines {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, a := range addrs {
		fmt.Println(addrStyle.Render(lines[a]))
	}
}
