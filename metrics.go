package vmpu

import "sync/atomic"

// supervisorMetrics holds the atomic counters behind a Supervisor's
// Metrics snapshot, scoped to one Supervisor instance rather than a
// process-wide package global, since more than one Supervisor can exist
// in a test process.
type supervisorMetrics struct {
	secureFaults     uint64
	recoveredPages   uint64
	recoveredRegions uint64
	denied           uint64
	halts            uint64
	switches         uint64
}

// Metrics is a point-in-time snapshot of a Supervisor's operation
// counters.
type Metrics struct {
	SecureFaults     uint64 `json:"secure_faults"`
	RecoveredPages   uint64 `json:"recovered_pages"`
	RecoveredRegions uint64 `json:"recovered_regions"`
	Denied           uint64 `json:"denied"`
	Halts            uint64 `json:"halts"`
	Switches         uint64 `json:"switches"`
	SlotEvictions    uint64 `json:"slot_evictions"`
}

func (m *supervisorMetrics) recordSecureFault()     { atomic.AddUint64(&m.secureFaults, 1) }
func (m *supervisorMetrics) recordRecoveredPage()   { atomic.AddUint64(&m.recoveredPages, 1) }
func (m *supervisorMetrics) recordRecoveredRegion() { atomic.AddUint64(&m.recoveredRegions, 1) }
func (m *supervisorMetrics) recordDenied()          { atomic.AddUint64(&m.denied, 1) }
func (m *supervisorMetrics) recordHalt()            { atomic.AddUint64(&m.halts, 1) }
func (m *supervisorMetrics) recordSwitch()          { atomic.AddUint64(&m.switches, 1) }

func (m *supervisorMetrics) snapshot(evictions uint64) Metrics {
	return Metrics{
		SecureFaults:     atomic.LoadUint64(&m.secureFaults),
		RecoveredPages:   atomic.LoadUint64(&m.recoveredPages),
		RecoveredRegions: atomic.LoadUint64(&m.recoveredRegions),
		Denied:           atomic.LoadUint64(&m.denied),
		Halts:            atomic.LoadUint64(&m.halts),
		Switches:         atomic.LoadUint64(&m.switches),
		SlotEvictions:    evictions,
	}
}

func (m *supervisorMetrics) reset() {
	atomic.StoreUint64(&m.secureFaults, 0)
	atomic.StoreUint64(&m.recoveredPages, 0)
	atomic.StoreUint64(&m.recoveredRegions, 0)
	atomic.StoreUint64(&m.denied, 0)
	atomic.StoreUint64(&m.halts, 0)
	atomic.StoreUint64(&m.switches, 0)
}

// GetMetrics returns a snapshot of s's operation counters.
func (s *Supervisor) GetMetrics() Metrics {
	return s.metrics.snapshot(s.slots.Evictions())
}

// ResetMetrics clears s's operation counters. SlotEvictions is kept by
// the slot cache and is not cleared.
func (s *Supervisor) ResetMetrics() {
	s.metrics.reset()
}
