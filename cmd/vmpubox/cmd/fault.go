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
)

const (
	faultIRQSecureFault = -9
	faultNVICOffset     = 16
	faultSPMain         = 0x2000_8000
)

var (
	faultAddr      uint32
	faultBoxStart  uint32
	faultBoxEnd    uint32
	faultGrantACL  bool
	faultExcReturn uint32
)

func init() {
	rootCmd.AddCommand(faultCmd)
	faultCmd.Flags().Uint32Var(&faultAddr, "addr", 0x2000_1000, "faulting address reported in SFAR")
	faultCmd.Flags().Uint32Var(&faultBoxStart, "box-start", 0x2000_0000, "start of a static region the active box owns")
	faultCmd.Flags().Uint32Var(&faultBoxEnd, "box-end", 0x2000_2000, "end of a static region the active box owns")
	faultCmd.Flags().BoolVar(&faultGrantACL, "grant", true, "register the box-start/box-end region in the public box before dispatching (addresses inside the public SRAM slot ArchInit programs, 0x20000000-0x20040000, resolve either way)")
	faultCmd.Flags().Uint32Var(&faultExcReturn, "exc-return", 0xffffffed, "exception-return value presented to SysMuxHandler")
}

var faultCmd = &cobra.Command{
	Use:   "fault",
	Short: "Replay a SecureFault against a SimDriver and print the dispatcher's resume-or-halt outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		driver := vmpu.NewSimDriver()
		sup := vmpu.NewSupervisor(driver)

		if err := sup.ArchInit(vmpu.SRAMLayout{
			FlashStart:       0x0c000000,
			FlashEnd:         0x0c100000,
			EntryPointsStart: 0x0c000400,
			EntryPointsEnd:   0x0c000480,
			PageEnd:          0x20000000,
			SRAMEnd:          0x20040000,
			BSSBoxesStart:    0x20000000,
		}); err != nil {
			return fmt.Errorf("ArchInit: %w", err)
		}

		if faultGrantACL {
			sup.AddStaticACL(vmpu.PublicBox, faultBoxStart, faultBoxEnd-faultBoxStart, vmpu.ACLDefaultData, 0)
		}

		if region, err := sup.RegionAt(vmpu.PublicBox, faultAddr); err != nil {
			fmt.Printf("preflight: %v\n", err)
		} else {
			fmt.Printf("preflight: addr resolves to [0x%08x, 0x%08x) acl=%s\n", region.Start, region.End, region.ACL)
		}

		driver.SetFrame(faultSPMain, [8]uint32{0, 0, 0, 0, 0, 0, 0x0c000420, 0})
		driver.SetIPSR(faultIRQSecureFault + faultNVICOffset)
		driver.SetSecureFault(faultAddr)

		var halted *vmpu.FaultDescriptor
		sup.HaltFunc = func(desc vmpu.FaultDescriptor) {
			halted = &desc
		}

		sup.SysMuxHandler(faultExcReturn, faultSPMain)

		green := color.New(color.FgGreen, color.Bold)
		red := color.New(color.FgRed, color.Bold)

		if halted == nil {
			green.Println("RESUMED")
			fmt.Printf("fault_addr=0x%08x resumed without a halt\n", faultAddr)
			return nil
		}

		red.Println("HALTED")
		fmt.Printf("kind=%s reason=%q ipsr=%d sp=0x%08x pc=0x%08x fault_addr=0x%08x\n",
			halted.Kind, halted.Reason, halted.IPSR, halted.SP, halted.PC, halted.FaultAddr)
		return nil
	},
}
