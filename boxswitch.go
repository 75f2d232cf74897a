package vmpu

// Switch implements the box-switch algorithm. src is advisory, used
// only for tracing; the steps are, in order:
//
//  1. Invalidate every dynamic slot.
//  2. If dst != public, push dst's stack/context region (first element
//     of its region slice) at PriorityStack, ahead of everything else,
//     so the inbound box's own stack is reachable before any other
//     region is mapped.
//  3. Push every currently active allocator page.
//  4. Push the remaining dst regions at PriorityActiveBox until the slot
//     cache reports the cursor has wrapped.
//  5. If dst is public, push all public-box regions at PriorityPublicBox.
//
// It runs inside a call-gate trampoline and is atomic with respect to
// box code: it completes before control returns to the inbound box.
func (s *Supervisor) Switch(src, dst BoxID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots.Invalidate()
	s.slots.BeginBatch()

	var dstRegions []Region
	if dst != PublicBox {
		dstRegions = s.regions.GetForBox(dst)
		if len(dstRegions) > 0 {
			s.slots.Push(dstRegions[0], PriorityStack)
			dstRegions = dstRegions[1:]
		}
	}

	s.pages.pushAllActivePages(IterateForward)

	if dst != PublicBox {
		for _, r := range dstRegions {
			if !s.slots.Push(r, PriorityActiveBox) {
				break
			}
		}
	}

	if dst == PublicBox {
		for _, r := range s.regions.GetForBox(PublicBox) {
			if !s.slots.Push(r, PriorityPublicBox) {
				break
			}
		}
	}

	s.driver.Barrier()
	s.activeBox = dst
	s.metrics.recordSwitch()
	s.lastSwitchSrc = src
}
