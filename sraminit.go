package vmpu

// Fixed static slot indices, in the order they are programmed and
// locked: public flash, entry-point window, rest-of-flash, public
// SRAM.
const (
	slotPublicFlash  = 0
	slotEntryPoints  = 1
	slotPublicFlash2 = 2
	slotPublicSRAM   = 3

	numStaticSlots = 4
)

// ArchInit programs the four fixed static slots from layout and enables
// the secure-fault exception: AIRCR/SHCSR setup via the driver, then
// the four static-ACL region registrations, then lock. It returns
// ErrNoDriver if the Supervisor was built with a nil driver, since
// every step from here on touches it.
func (s *Supervisor) ArchInit(layout SRAMLayout) error {
	if s.driver == nil {
		return ErrNoDriver
	}

	s.layout = layout

	if err := s.driver.EnableFaults(); err != nil {
		return err
	}

	publicFlash := Region{
		Start: layout.FlashStart,
		End:   layout.EntryPointsStart,
		ACL:   ACLUserExecute | ACLUserRead | ACLUserWrite,
	}
	if err := s.slots.SetStatic(slotPublicFlash, publicFlash); err != nil {
		return err
	}

	entryPoints := Region{
		Start:  layout.EntryPointsStart,
		End:    layout.EntryPointsEnd,
		ACL:    ACLSecureExecute | ACLUserExecute | ACLNonSecureCallable,
		Config: 0,
	}
	if err := s.slots.SetStatic(slotEntryPoints, entryPoints); err != nil {
		return err
	}

	restOfFlash := Region{
		Start: layout.EntryPointsEnd,
		End:   layout.FlashEnd,
		ACL:   ACLUserExecute | ACLUserRead | ACLUserWrite,
	}
	if err := s.slots.SetStatic(slotPublicFlash2, restOfFlash); err != nil {
		return err
	}

	publicSRAM := Region{
		Start: layout.PageEnd,
		End:   layout.SRAMEnd,
		ACL:   ACLUserExecute | ACLUserRead | ACLUserWrite,
	}
	if err := s.slots.SetStatic(slotPublicSRAM, publicSRAM); err != nil {
		return err
	}

	s.regions.AddStaticACL(PublicBox, publicFlash.Start, publicFlash.Size(), publicFlash.ACL, publicFlash.Config)
	s.regions.AddStaticACL(PublicBox, entryPoints.Start, entryPoints.Size(), entryPoints.ACL, entryPoints.Config)
	s.regions.AddStaticACL(PublicBox, restOfFlash.Start, restOfFlash.Size(), restOfFlash.ACL, restOfFlash.Config)
	s.regions.AddStaticACL(PublicBox, publicSRAM.Start, publicSRAM.Size(), publicSRAM.ACL, publicSRAM.Config)

	s.slots.Lock()
	return nil
}

// AclSRAM carves a stack extent and a bss extent for box out of the SRAM
// pool, guard-band padded on both sides, advancing the process-wide
// cursor, and returns (bssStart, stackTop).
//
// The cursor is initialized once, on the first call, from layout's
// BSSBoxesStart plus one guard band; it never decreases, so boxes added
// later get higher addresses.
func (s *Supervisor) AclSRAM(box BoxID, bssSize, stackSize uint32) (bssStart, stackTop uint32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sramCursor == 0 {
		s.sramCursor = roundUp(s.layout.BSSBoxesStart) + GuardBand
	}

	stackSize = roundUp(stackSize)
	if stackSize < MinStackFloor {
		stackSize = MinStackFloor
	}

	s.regions.AddStaticACL(box, s.sramCursor, stackSize, ACLDefaultStack, 0)
	stackTop = s.sramCursor + stackSize
	s.sramCursor = stackTop + GuardBand

	if bssSize == 0 {
		return 0, 0, ErrZeroBSS
	}
	bssSize = roundUp(bssSize)
	bssStart = s.sramCursor
	s.regions.AddStaticACL(box, bssStart, bssSize, ACLDefaultData, 0)
	s.sramCursor = bssStart + bssSize + GuardBand

	return bssStart, stackTop, nil
}

// OrderBoxes returns n in ascending order, box 0 pinned at position 0.
// This is a hook for a future scheduler-like ordering of boxes; its real
// policy is not defined upstream, so the only invariant enforced here is
// that box 0 stays first and the result is a permutation of 0..n-1.
func OrderBoxes(n int) []BoxID {
	out := make([]BoxID, n)
	for i := range out {
		out[i] = BoxID(i)
	}
	return out
}
