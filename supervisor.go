package vmpu

import "sync"

// Default hardware geometry: a 16-slot MPU with 4 static slots.
const (
	DefaultTotalSlots  = 16
	DefaultStaticSlots = numStaticSlots
)

// Supervisor threads every piece of process-wide state a bare-metal
// build would otherwise keep as file-scope globals (active box, the
// SRAM cursor, the slot cache) through one value. It is not safe to use
// from more than one goroutine concurrently except through the methods
// that explicitly take s.mu: the fault path and the switch path are
// externally guaranteed mutually exclusive (call gates mask the
// secure-fault priority), so the mutex here exists defensively, not
// because genuine concurrency is expected.
type Supervisor struct {
	mu sync.Mutex

	driver  Driver
	regions *regionTable
	slots   *slotCache
	pages   *pageHeapAdapter
	metrics supervisorMetrics

	activeBox     BoxID
	lastSwitchSrc BoxID

	layout     SRAMLayout
	sramCursor uint32

	// HaltFunc is invoked on every unrecoverable fault. Defaults to
	// defaultHalt (panic); tests and tooling override it to observe the
	// halt path without crashing.
	HaltFunc HaltFunc
}

// NewSupervisor builds a Supervisor over driver with the default 16-slot,
// 4-static-slot geometry. Use NewSupervisorWithGeometry for a different
// hardware shape.
func NewSupervisor(driver Driver) *Supervisor {
	return NewSupervisorWithGeometry(driver, DefaultTotalSlots, DefaultStaticSlots)
}

// NewSupervisorWithGeometry builds a Supervisor over driver with
// totalSlots hardware protection slots, the first staticSlots of which
// are fixed at init and never evicted.
func NewSupervisorWithGeometry(driver Driver, totalSlots, staticSlots int) *Supervisor {
	s := &Supervisor{
		driver:   driver,
		regions:  newRegionTable(),
		HaltFunc: defaultHalt,
	}
	s.slots = newSlotCache(driver, totalSlots, staticSlots)
	s.pages = newPageHeapAdapter(nil, s.slots)
	return s
}

// SetPageAllocator wires the external page allocator the page-heap
// adapter forwards into. A nil allocator (the default) means no box
// uses the page heap.
func (s *Supervisor) SetPageAllocator(alloc PageAllocator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = newPageHeapAdapter(alloc, s.slots)
}

// ActiveBox returns the box currently executing.
func (s *Supervisor) ActiveBox() BoxID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeBox
}

// AddStaticACL registers one more region in box's static array. It is a
// thin pass through used by box-configuration code driven from a decoded
// BoxConfig blob. It is not checked against the slot cache's lock: it
// may be called after ArchInit, as AclSRAM and cmd/vmpubox's fault
// command do.
func (s *Supervisor) AddStaticACL(box BoxID, start, size uint32, acl ACL, config uint32) Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regions.AddStaticACL(box, start, size, acl, config)
}

// RegionsForBox returns box's ordered static region slice.
func (s *Supervisor) RegionsForBox(box BoxID) []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regions.GetForBox(box)
}

// DynamicSlots returns the regions currently held in the dynamic slot
// pool, in slot order, for tooling (cmd/vmpubox's inspect command).
func (s *Supervisor) DynamicSlots() []Region {
	return s.slots.DynamicRegions()
}

// SlotEvictions returns the number of dynamic-slot overwrites observed
// so far.
func (s *Supervisor) SlotEvictions() uint64 {
	return s.slots.Evictions()
}

// halt records the halt in metrics and invokes HaltFunc. It exists so
// every halt call site (dispatch.go) goes through one place that updates
// metrics before handing off.
func (s *Supervisor) halt(desc FaultDescriptor) {
	s.metrics.recordHalt()
	fn := s.HaltFunc
	if fn == nil {
		fn = defaultHalt
	}
	fn(desc)
}

// DriverInstance returns the Driver this Supervisor was built with, for
// tooling that wants to inspect simulated state by casting it to
// *SimDriver.
func (s *Supervisor) DriverInstance() Driver {
	return s.driver
}
