package vmpu

// PageID identifies a page owned by the external page allocator.
type PageID uint8

// IterateDirection controls the order iterateActivePages visits pages in.
type IterateDirection int

const (
	IterateForward IterateDirection = iota
	IterateBackward
)

// PageAllocator is the external page allocator's query surface. The core
// only consumes it; bookkeeping (free lists, reference counts, eviction
// policy) is entirely the allocator's concern and out of scope here.
type PageAllocator interface {
	// GetActiveRegionForAddress returns the page covering addr, if any.
	GetActiveRegionForAddress(addr uint32) (start, end uint32, page PageID, ok bool)
	// RegisterFault records that page faulted, for the allocator's own
	// fault-frequency bookkeeping.
	RegisterFault(page PageID)
	// IterateActivePages visits every currently active page in the
	// given direction, calling visit(start, end, page) for each.
	IterateActivePages(direction IterateDirection, visit func(start, end uint32, page PageID))
}

// pageHeapAdapter is the sole consumer of PageAllocator; it forwards
// the allocator's page iteration into the slot cache at page priority.
type pageHeapAdapter struct {
	alloc PageAllocator
	slots *slotCache
}

func newPageHeapAdapter(alloc PageAllocator, slots *slotCache) *pageHeapAdapter {
	return &pageHeapAdapter{alloc: alloc, slots: slots}
}

// pushActivePage installs the page covering addr (if any) into the slot
// cache at PriorityPage and records the fault with the allocator. Returns
// false if addr is not covered by an active page.
func (p *pageHeapAdapter) pushActivePage(addr uint32) bool {
	if p.alloc == nil {
		return false
	}
	start, end, page, ok := p.alloc.GetActiveRegionForAddress(addr)
	if !ok {
		return false
	}
	p.alloc.RegisterFault(page)
	p.slots.Push(Region{Start: start, End: end, Config: 1}, PriorityPage)
	return true
}

// pushAllActivePages pushes every active page into the slot cache at
// page priority, in the given direction. This is the box-switch step
// that keeps page-heap regions resident across a box transition.
func (p *pageHeapAdapter) pushAllActivePages(direction IterateDirection) {
	if p.alloc == nil {
		return
	}
	p.alloc.IterateActivePages(direction, func(start, end uint32, page PageID) {
		p.slots.Push(Region{Start: start, End: end, Config: 1}, PriorityPage)
	})
}
