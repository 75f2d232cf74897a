package vmpu

// scbSCR is the System Control Block's SCR address. The non-secure world
// legitimately pokes this register; find_acl grants it UREAD|UWRITE
// unconditionally rather than resolving it through the region table.
//
// FIXME: this is a blunt override; SECURE_ACCESS semantics would be more
// precise, but that is a decision for a future revision, not this one.
const scbSCR = 0xE000ED10

// FindACL answers the pre-check query exposed to call-gate code: given
// an address and access size, returns the granted ACL word, or 0 if
// denied.
//
// It performs the same address resolution fault recovery does (SCR
// concession, bit-band translation, active/public box lookup) without
// installing anything into the slot cache: a read-only query.
func (s *Supervisor) FindACL(addr, size uint32) ACL {
	if addr == scbSCR {
		return ACLUserRead | ACLUserWrite
	}

	phys := translateBitband(addr)

	region, ok := s.regions.findFaultRegion(s.activeBox, phys)
	if !ok {
		return 0
	}
	if !region.Contains(phys, size) {
		return 0
	}
	return region.ACL
}

// RegionAt resolves addr against box using the same active/public
// fallback order fault recovery uses, for callers that want a definite
// answer instead of FindACL's permissive zero-ACL response. It returns
// ErrUnknownBox if box is not the public box and has never had a
// region registered, or ErrRegionNotFound if box is known but no
// region covers addr.
func (s *Supervisor) RegionAt(box BoxID, addr uint32) (Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if box != PublicBox && len(s.regions.GetForBox(box)) == 0 {
		return Region{}, ErrUnknownBox
	}

	phys := translateBitband(addr)
	region, ok := s.regions.findFaultRegion(box, phys)
	if !ok {
		return Region{}, ErrRegionNotFound
	}
	return region, nil
}

// recover implements the fault-recovery algorithm:
//
//  1. SCR concession.
//  2. Bit-band translation.
//  3. Consult the page adapter; install an active page if one covers the
//     address.
//  4. Otherwise look up active-box then public-box regions.
//  5. Reject if the access isn't fully contained in the found region.
//  6. Push the region and report recovered.
//
// It returns the FaultDescriptor either way; Recovered distinguishes the
// two outcomes.
func (s *Supervisor) recover(faultAddr uint32, size uint32) FaultDescriptor {
	desc := FaultDescriptor{Kind: FaultSecure, FaultAddr: faultAddr}

	if faultAddr == scbSCR {
		s.slots.BeginBatch()
		s.slots.Push(Region{Start: scbSCR, End: scbSCR + 4, ACL: ACLUserRead | ACLUserWrite}, PriorityFaultingStatic)
		s.driver.Barrier()
		desc.Recovered = true
		desc.Reason = "SCR concession"
		return desc
	}

	phys := translateBitband(faultAddr)

	s.slots.BeginBatch()

	if s.pages.pushActivePage(phys) {
		s.driver.Barrier()
		desc.Recovered = true
		desc.Reason = "active page"
		s.metrics.recordRecoveredPage()
		return desc
	}

	region, ok := s.regions.findFaultRegion(s.activeBox, phys)
	if !ok {
		desc.Reason = "no covering region"
		s.metrics.recordDenied()
		return desc
	}

	if !region.Contains(phys, size) {
		desc.Reason = "access not fully contained in region"
		s.metrics.recordDenied()
		return desc
	}

	s.slots.Push(region, PriorityFaultingStatic)
	s.driver.Barrier()
	desc.Recovered = true
	desc.Reason = "static region"
	s.metrics.recordRecoveredRegion()
	return desc
}
