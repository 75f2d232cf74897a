package vmpu

import "testing"

func TestSysMuxHandlerFatalFaultsHalt(t *testing.T) {
	tests := []struct {
		name string
		ipsr int32
		kind FaultKind
	}{
		{"NMI", irqNMI + nvicOffset, FaultNMI},
		{"HardFault", irqHardFault + nvicOffset, FaultHard},
		{"MemManage", irqMemManage + nvicOffset, FaultMemManage},
		{"BusFault", irqBusFault + nvicOffset, FaultBus},
		{"UsageFault", irqUsageFault + nvicOffset, FaultUsage},
		{"DebugMonitor", irqDebugMonitor + nvicOffset, FaultDebug},
		{"not a system IRQ", nvicOffset + 4, FaultNotSystemIRQ}, // external IRQ 4
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := NewSimDriver()
			sup := NewSupervisor(driver)
			driver.SetIPSR(tt.ipsr)

			var got *FaultDescriptor
			sup.HaltFunc = func(d FaultDescriptor) { got = &d }

			excReturn := sup.SysMuxHandler(0xffff_ffed, 0x2000_8000)
			if excReturn != 0xffff_ffed {
				t.Errorf("SysMuxHandler should return excReturn unchanged, got %#x", excReturn)
			}
			if got == nil {
				t.Fatal("expected a halt")
			}
			if got.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.kind)
			}
		})
	}
}

func TestSysMuxHandlerNoHandlerFaultsHalt(t *testing.T) {
	tests := []struct {
		name string
		ipsr int32
		kind FaultKind
	}{
		{"SVCall", irqSVCall + nvicOffset, FaultSVCall},
		{"PendSV", irqPendSV + nvicOffset, FaultPendSV},
		{"SysTick", irqSysTick + nvicOffset, FaultSysTick},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := NewSimDriver()
			sup := NewSupervisor(driver)
			driver.SetIPSR(tt.ipsr)

			var got *FaultDescriptor
			sup.HaltFunc = func(d FaultDescriptor) { got = &d }
			sup.SysMuxHandler(0xffff_ffed, 0x2000_8000)

			if got == nil || got.Kind != tt.kind {
				t.Errorf("got %+v, want a halt with Kind %v", got, tt.kind)
			}
		})
	}
}

func TestDispatchSecureFaultRecovers(t *testing.T) {
	driver := NewSimDriver()
	sup := NewSupervisor(driver)
	sup.AddStaticACL(PublicBox, 0x2000_0000, 0x1000, ACLDefaultData, 0)

	sp := uint32(0x2000_8000)
	driver.SetFrame(sp, [8]uint32{0, 0, 0, 0, 0, 0, 0x0c00_0420, 0})
	driver.SetIPSR(irqSecureFault + nvicOffset)
	driver.SetSecureFault(0x2000_0050)

	var halted bool
	sup.HaltFunc = func(FaultDescriptor) { halted = true }

	excReturn := sup.SysMuxHandler(0xffff_ffed, sp)
	if halted {
		t.Fatal("expected the SecureFault to be recovered, not halted")
	}
	if excReturn != 0xffff_ffed {
		t.Errorf("excReturn = %#x, want unchanged 0xffffffed", excReturn)
	}
	if driver.ReadSFSR() != 0 {
		t.Errorf("ReadSFSR() = %#x, want 0 after a successful recovery clears it", driver.ReadSFSR())
	}
	if sup.GetMetrics().SecureFaults != 1 {
		t.Errorf("SecureFaults = %d, want 1", sup.GetMetrics().SecureFaults)
	}
}

func TestDispatchSecureFaultHaltsWhenUnrecoverable(t *testing.T) {
	driver := NewSimDriver()
	sup := NewSupervisor(driver)

	sp := uint32(0x2000_8000)
	driver.SetFrame(sp, [8]uint32{0, 0, 0, 0, 0, 0, 0x0c00_0420, 0})
	driver.SetIPSR(irqSecureFault + nvicOffset)
	driver.SetSecureFault(0xdead_0000) // no region covers this address

	var got *FaultDescriptor
	sup.HaltFunc = func(d FaultDescriptor) { got = &d }

	sup.SysMuxHandler(0xffff_ffed, sp)
	if got == nil {
		t.Fatal("expected a halt")
	}
	if got.Kind != FaultSecure {
		t.Errorf("Kind = %v, want FaultSecure", got.Kind)
	}
}

func TestDispatchSecureFaultHaltsWithoutAUVIOLOrSFARVALID(t *testing.T) {
	driver := NewSimDriver()
	sup := NewSupervisor(driver)

	sp := uint32(0x2000_8000)
	driver.SetIPSR(irqSecureFault + nvicOffset)
	// SFSR left zero: neither AUVIOL nor SFARVALID is set.

	var got *FaultDescriptor
	sup.HaltFunc = func(d FaultDescriptor) { got = &d }
	sup.SysMuxHandler(0xffff_ffed, sp)

	if got == nil {
		t.Fatal("expected a halt when SFSR lacks AUVIOL|SFARVALID")
	}
	if sup.GetMetrics().SecureFaults != 1 {
		t.Errorf("SecureFaults should still be counted once per dispatch even on this early halt")
	}
}
