package vmpu

import "sync"

// SimDriver is an in-memory reference Driver. It has no real hardware
// behind it: MPUSet/SAUSet just record the last-written region per slot,
// and the "stacked frame" is a caller-populated map from sp to an
// 8-word frame, read by word offset. This is enough to drive the whole
// dispatch->recovery->slot-cache pipeline from a test or from
// cmd/vmpubox without any architecture-specific code.
type SimDriver struct {
	mu sync.Mutex

	mpuSlots map[int]Region
	sauSlots map[int]Region

	frames map[uint32][8]uint32 // sp -> 8-word exception frame

	ipsr      int32
	sfsr      uint32
	sfar      uint32
	faultsEn  bool
	barriers  uint64
	invalidateCount uint64
}

// NewSimDriver returns a ready-to-use simulated Driver.
func NewSimDriver() *SimDriver {
	return &SimDriver{
		mpuSlots: make(map[int]Region),
		sauSlots: make(map[int]Region),
		frames:   make(map[uint32][8]uint32),
	}
}

func (d *SimDriver) MPUSet(slot int, r Region) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mpuSlots[slot] = r
	return nil
}

func (d *SimDriver) SAUSet(slot int, r Region) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sauSlots[slot] = r
	return nil
}

// MPUInvalidate forgets every recorded MPU and SAU slot, the static ones
// included: the simulator is not told which slots are static.
func (d *SimDriver) MPUInvalidate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mpuSlots = make(map[int]Region)
	d.sauSlots = make(map[int]Region)
	d.invalidateCount++
	return nil
}

// SetFrame installs the 8-word exception frame that would be found on
// the stack at sp, for a test to simulate a fault.
func (d *SimDriver) SetFrame(sp uint32, words [8]uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames[sp] = words
}

func (d *SimDriver) ReadFrameWord(sp uint32, offset int) uint32 {
	if offset < 0 || offset > 7 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	frame, ok := d.frames[sp]
	if !ok {
		return 0
	}
	return frame[offset]
}

// ReadFrameWordUnpriv behaves identically to ReadFrameWord in simulation:
// there is no privilege boundary to cross, but the method exists so
// callers exercise the same code path a real driver would gate.
func (d *SimDriver) ReadFrameWordUnpriv(sp uint32, offset int) uint32 {
	return d.ReadFrameWord(sp, offset)
}

// SetIPSR sets the value IPSR() will report, for tests to drive a
// specific exception id through the dispatcher.
func (d *SimDriver) SetIPSR(v int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ipsr = v
}

func (d *SimDriver) IPSR() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ipsr
}

// SPFor stands in for the selection among the four stack pointers. In
// simulation there is only one address space and no separate secure,
// non-secure, MSP or PSP stacks, so it returns mspS for every exc_return
// value; the bits are decoded with DecodeExcReturn but do not change the
// result.
func (d *SimDriver) SPFor(excReturn uint32, mspS uint32) uint32 {
	fromS, fromNP, fromPSP := DecodeExcReturn(excReturn)
	if fromS {
		if fromNP && fromPSP {
			return mspS // no separate secure PSP tracked in simulation
		}
		return mspS
	}
	_ = fromNP
	return mspS
}

// DecodeExcReturn extracts the from-secure, from-non-secure and
// from-PSP bits from an exception-return value, matching EXC_FROM_S /
// EXC_FROM_NP / EXC_FROM_PSP in the source this was distilled from.
func DecodeExcReturn(excReturn uint32) (fromS, fromNP, fromPSP bool) {
	const (
		excReturnS   = 1 << 6
		excReturnDCRS = 1 << 5
		excReturnSPSEL = 1 << 2
		excReturnES  = 1 << 0
	)
	fromS = excReturn&excReturnS != 0
	fromNP = excReturn&excReturnES == 0
	fromPSP = excReturn&excReturnSPSEL != 0
	return
}

func (d *SimDriver) ReadSFSR() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sfsr
}

func (d *SimDriver) ReadSFAR() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sfar
}

func (d *SimDriver) ClearSFSR(value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sfsr &^= value
}

// SetSecureFault arms the simulated SAU so the next dispatch sees an
// AUVIOL|SFARVALID SecureFault at addr.
func (d *SimDriver) SetSecureFault(addr uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sfsr = sfsrAUVIOL | sfsrSFARVALID
	d.sfar = addr
}

func (d *SimDriver) EnableFaults() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faultsEn = true
	return nil
}

func (d *SimDriver) FaultsEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.faultsEn
}

func (d *SimDriver) Barrier() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.barriers++
}

// Barriers returns how many times Barrier has been called, for tests
// asserting the slot-write-then-barrier ordering guarantee.
func (d *SimDriver) Barriers() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.barriers
}
