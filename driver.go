package vmpu

// Driver is the hardware abstraction boundary. It mediates every access
// to the MPU, SAU, and SCB registers and to the faulting thread's
// stacked frame. Bring-up, per-SoC clock/NVIC setup, and the actual
// register encodings are external collaborators; a real implementation
// lives outside this module, and NewSimDriver provides an in-memory
// reference implementation for tests and cmd/vmpubox.
type Driver interface {
	// MPUSet programs MPU slot with region. SAUSet does the same for the
	// SAU. Both are separate calls because not every region needs both
	// (e.g. a pure SRAM data region has no SAU counterpart), but a real
	// driver is free to treat them as one combined write.
	MPUSet(slot int, r Region) error
	SAUSet(slot int, r Region) error

	// MPUInvalidate disables every non-static slot in hardware. Pairs
	// with slotCache.Invalidate's "forget" half.
	MPUInvalidate() error

	// ReadFrameWord reads word offset (0..7) from the exception frame
	// stacked at sp. A bad offset returns a sentinel zero; callers must
	// treat a recovered PC as untrusted, never as a jump target.
	ReadFrameWord(sp uint32, offset int) uint32

	// ReadFrameWordUnpriv is the unprivileged-load variant: it must not
	// be usable by an attacker-controlled sp to read Secure memory the
	// current privilege level couldn't otherwise reach.
	ReadFrameWordUnpriv(sp uint32, offset int) uint32

	// IPSR exposes __get_IPSR; SPFor derives which of the four stack
	// pointers (secure/non-secure x MSP/PSP) was interrupted from the
	// exception-return value's bits.
	IPSR() int32
	SPFor(excReturn uint32, mspS uint32) uint32

	// ReadSFSR and ReadSFAR expose the SAU fault-status and fault-address
	// registers consulted on SecureFault.
	ReadSFSR() uint32
	ReadSFAR() uint32
	ClearSFSR(value uint32)

	// EnableFaults performs the AIRCR/SHCSR sequence that de-prioritizes
	// non-secure exceptions and enables SecureFault, UsageFault, BusFault
	// and MemManage.
	EnableFaults() error

	// Barrier inserts the architectural barrier that must follow a burst
	// of MPUSet/SAUSet calls before control returns to faulting code.
	Barrier()
}

// SFSR bit positions consulted by the dispatcher.
const (
	sfsrAUVIOL     = 1 << 9
	sfsrSFARVALID  = 1 << 8
)
