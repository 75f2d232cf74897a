// Package vmpu implements a software memory-protection supervisor for
// ARMv8-M cores running TrustZone: it partitions an address space into
// isolated boxes, answers access-control queries against each box's
// static ACL, and recovers from SecureFault exceptions by programming a
// small number of hardware protection slots on demand.
//
// # Basic usage
//
// Build a Supervisor over a Driver (use NewSimDriver for testing, or a
// real register-poking implementation on actual hardware), register each
// box's static regions, lock the static slots, then route the core's
// system-exception vector to SysMuxHandler:
//
//	sup := vmpu.NewSupervisor(vmpu.NewSimDriver())
//	if err := sup.ArchInit(layout); err != nil {
//		// handle setup failure
//	}
//	bssStart, stackTop, err := sup.AclSRAM(1, 200, 1024)
//
//	excReturn = sup.SysMuxHandler(excReturn, mspS)
//
// Box entry/exit is driven by an external call-gate layer, which invokes
// Switch on every box transition:
//
//	sup.Switch(srcBox, dstBox)
//
// # Resume or halt
//
// SysMuxHandler never returns an error. A recoverable SecureFault installs
// a region and returns the (possibly unchanged) exception-return value to
// resume the faulting instruction; anything else invokes the Supervisor's
// HaltFunc, which by default panics with a formatted FaultDescriptor. This
// mirrors the bare-metal contract: there is no caller to propagate an
// error to.
package vmpu
