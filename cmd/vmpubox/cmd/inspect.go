/*
Copyright © 2025 armvmpu authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/armvmpu/vmpu"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var (
	inspectFlashStart  uint32
	inspectFlashEnd    uint32
	inspectEntryStart  uint32
	inspectEntryEnd    uint32
	inspectPageEnd     uint32
	inspectSRAMEnd     uint32
	inspectBoxes       int
	inspectBSS         uint32
	inspectStack       uint32
	inspectPageAligned bool
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Uint32Var(&inspectFlashStart, "flash-start", 0x0c000000, "flash region start address")
	inspectCmd.Flags().Uint32Var(&inspectFlashEnd, "flash-end", 0x0c100000, "flash region end address")
	inspectCmd.Flags().Uint32Var(&inspectEntryStart, "entry-start", 0x0c000400, "entry-point window start address")
	inspectCmd.Flags().Uint32Var(&inspectEntryEnd, "entry-end", 0x0c000480, "entry-point window end address")
	inspectCmd.Flags().Uint32Var(&inspectPageEnd, "page-end", 0x20000000, "page-heap end / public SRAM start address")
	inspectCmd.Flags().Uint32Var(&inspectSRAMEnd, "sram-end", 0x20040000, "SRAM end address")
	inspectCmd.Flags().IntVar(&inspectBoxes, "boxes", 1, "number of non-public boxes to carve via AclSRAM")
	inspectCmd.Flags().Uint32Var(&inspectBSS, "bss", 256, "bss size per box (bytes)")
	inspectCmd.Flags().Uint32Var(&inspectStack, "stack", 1024, "stack size per box (bytes)")
	inspectCmd.Flags().BoolVar(&inspectPageAligned, "page-align", false, "require --bss/--stack to be host-page-size multiples")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build a Supervisor over a SimDriver and dump its region table and slot cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectPageAligned {
			page := unix.Getpagesize()
			if int(inspectBSS)%page != 0 || int(inspectStack)%page != 0 {
				return fmt.Errorf("--bss and --stack must be multiples of the host page size (%d bytes) when --page-align is set", page)
			}
		}

		driver := vmpu.NewSimDriver()
		sup := vmpu.NewSupervisor(driver)

		layout := vmpu.SRAMLayout{
			FlashStart:       inspectFlashStart,
			FlashEnd:         inspectFlashEnd,
			EntryPointsStart: inspectEntryStart,
			EntryPointsEnd:   inspectEntryEnd,
			PageEnd:          inspectPageEnd,
			SRAMEnd:          inspectSRAMEnd,
			BSSBoxesStart:    inspectPageEnd,
		}
		if err := sup.ArchInit(layout); err != nil {
			return fmt.Errorf("ArchInit: %w", err)
		}

		for i := 1; i <= inspectBoxes; i++ {
			box := vmpu.BoxID(i)
			bssStart, stackTop, err := sup.AclSRAM(box, inspectBSS, inspectStack)
			if err != nil {
				return fmt.Errorf("AclSRAM(box=%d): %w", box, err)
			}
			fmt.Printf("box %d: stack_top=0x%08x bss_start=0x%08x\n", box, stackTop, bssStart)
		}

		bold := color.New(color.Bold)
		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)
		red := color.New(color.FgRed)

		for _, box := range append([]vmpu.BoxID{vmpu.PublicBox}, boxRange(inspectBoxes)...) {
			bold.Printf("\nbox %d static regions:\n", box)
			for _, r := range sup.RegionsForBox(box) {
				printRegion(r, green, yellow, red)
			}
		}

		bold.Println("\ndynamic slots:")
		for _, r := range sup.DynamicSlots() {
			printRegion(r, green, yellow, red)
		}
		fmt.Printf("slot evictions: %d\n", sup.SlotEvictions())

		return nil
	},
}

func boxRange(n int) []vmpu.BoxID {
	out := make([]vmpu.BoxID, n)
	for i := range out {
		out[i] = vmpu.BoxID(i + 1)
	}
	return out
}

func printRegion(r vmpu.Region, green, yellow, red *color.Color) {
	fmt.Printf("  [0x%08x, 0x%08x) ", r.Start, r.End)
	acl := r.ACL
	if acl.HasUserRead() {
		green.Print("R")
	} else {
		fmt.Print("-")
	}
	if acl.HasUserWrite() {
		green.Print("W")
	} else {
		fmt.Print("-")
	}
	if acl.HasUserExecute() {
		yellow.Print("X")
	} else {
		fmt.Print("-")
	}
	if acl.HasSecureExecute() {
		red.Print("S")
	} else {
		fmt.Print("-")
	}
	if acl.HasNonSecureCallable() {
		red.Print("N")
	} else {
		fmt.Print("-")
	}
	fmt.Println()
}
