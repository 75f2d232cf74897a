package vmpu

import "fmt"

// HaltFunc is invoked whenever the dispatcher decides a fault cannot be
// recovered from. It never returns to its caller on real hardware: the
// core has nothing left to resume, so the default implementation
// panics. Tests and cmd/vmpubox install a recording HaltFunc instead, so
// the halt path can be observed without crashing the process.
type HaltFunc func(FaultDescriptor)

// defaultHalt formats desc the way DEBUG_FAULT/HALT_ERROR do: kind, the
// exception-return value, the stacked PC and SP, and the reason string,
// then panics. There is no "return" from a halt.
func defaultHalt(desc FaultDescriptor) {
	panic(formatFault(desc))
}

func formatFault(desc FaultDescriptor) string {
	return fmt.Sprintf(
		"vmpu: halt: %s: %s (ipsr=%d exc_return=0x%08x sp=0x%08x pc=0x%08x fault_addr=0x%08x)",
		desc.Kind, desc.Reason, desc.IPSR, desc.ExcReturn, desc.SP, desc.PC, desc.FaultAddr,
	)
}
