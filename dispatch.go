package vmpu

// NVIC system-exception numbers, encoded the way IPSR - NVICOffset
// produces them: positive IRQn values are hardware IRQs, negative ones
// are the fixed system exceptions. Only the system range is handled
// here; external hardware IRQs are a board-level concern, not this
// core's.
const (
	irqNMI           = -14
	irqHardFault     = -13
	irqMemManage     = -12
	irqBusFault      = -11
	irqUsageFault    = -10
	irqSecureFault   = -9
	irqSVCall        = -5
	irqDebugMonitor  = -4
	irqPendSV        = -2
	irqSysTick       = -1

	nvicOffset = 16
)

// defaultFaultSize is the access width assumed for a SecureFault's
// containment check (step 5 of the recovery algorithm) when the
// dispatcher has no instruction decode to learn the real access size
// from. SFAR/bit-band faults are architecturally word faults, so 4 is
// the conservative, correct default.
const defaultFaultSize = 4

// SysMuxHandler is the system-exception entry point. It classifies the
// exception from IPSR, derives the interrupted stack pointer, dispatches
// on id, and either resumes (returning excReturn unchanged) or halts.
// There is no persistent state across invocations: each call is a
// single atomic fault-or-halt.
func (s *Supervisor) SysMuxHandler(excReturn uint32, mspS uint32) uint32 {
	ipsr := s.driver.IPSR() - nvicOffset
	sp := s.driver.SPFor(excReturn, mspS)

	desc := FaultDescriptor{IPSR: ipsr, ExcReturn: excReturn, SP: sp}

	switch int(ipsr) {
	case irqNMI:
		desc.Kind = FaultNMI
		desc.Reason = "no NMI handler registered"
		s.halt(desc)

	case irqHardFault:
		desc.Kind = FaultHard
		desc.Reason = "cannot recover from a hard fault"
		s.halt(desc)

	case irqMemManage:
		desc.Kind = FaultMemManage
		desc.Reason = "cannot recover from a memory management fault"
		s.halt(desc)

	case irqBusFault:
		desc.Kind = FaultBus
		desc.Reason = "cannot recover from a bus fault"
		s.halt(desc)

	case irqUsageFault:
		desc.Kind = FaultUsage
		desc.Reason = "cannot recover from a usage fault"
		s.halt(desc)

	case irqSecureFault:
		return s.dispatchSecureFault(excReturn, sp, desc)

	case irqSVCall:
		desc.Kind = FaultSVCall
		desc.Reason = "no SVCall handler registered"
		s.halt(desc)

	case irqDebugMonitor:
		desc.Kind = FaultDebug
		desc.Reason = "cannot recover from a DebugMonitor fault"
		s.halt(desc)

	case irqPendSV:
		desc.Kind = FaultPendSV
		desc.Reason = "no PendSV handler registered"
		s.halt(desc)

	case irqSysTick:
		desc.Kind = FaultSysTick
		desc.Reason = "no SysTick handler registered"
		s.halt(desc)

	default:
		desc.Kind = FaultNotSystemIRQ
		desc.Reason = "active IRQn is not a system interrupt"
		s.halt(desc)
	}

	return excReturn
}

// dispatchSecureFault implements the SecureFault branch: read SFSR,
// check AUVIOL|SFARVALID, pull PC (offset 6 words) and SFAR, invoke
// recovery, clear SFSR and resume on success, halt otherwise.
func (s *Supervisor) dispatchSecureFault(excReturn uint32, sp uint32, desc FaultDescriptor) uint32 {
	desc.Kind = FaultSecure
	s.metrics.recordSecureFault()

	sfsr := s.driver.ReadSFSR()
	if sfsr&(sfsrAUVIOL|sfsrSFARVALID) != (sfsrAUVIOL | sfsrSFARVALID) {
		desc.Reason = "cannot recover from a secure fault"
		s.halt(desc)
		return excReturn
	}

	pc := s.driver.ReadFrameWordUnpriv(sp, 6)
	faultAddr := s.driver.ReadSFAR()
	desc.PC = pc
	desc.FaultAddr = faultAddr

	result := s.recover(faultAddr, defaultFaultSize)
	if result.Recovered {
		s.driver.ClearSFSR(sfsr)
		return excReturn
	}

	desc.Reason = "cannot recover from a secure fault: " + result.Reason
	s.halt(desc)
	return excReturn
}
