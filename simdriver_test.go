package vmpu

import "testing"

func TestSimDriverMPUAndSAUSet(t *testing.T) {
	d := NewSimDriver()
	r := Region{Start: 1, End: 2}
	if err := d.MPUSet(0, r); err != nil {
		t.Fatalf("MPUSet = %v, want nil", err)
	}
	if err := d.SAUSet(0, r); err != nil {
		t.Fatalf("SAUSet = %v, want nil", err)
	}
	if err := d.MPUInvalidate(); err != nil {
		t.Fatalf("MPUInvalidate = %v, want nil", err)
	}
}

func TestSimDriverFrameWords(t *testing.T) {
	d := NewSimDriver()
	d.SetFrame(0x2000_8000, [8]uint32{1, 2, 3, 4, 5, 6, 7, 8})

	if got := d.ReadFrameWord(0x2000_8000, 6); got != 7 {
		t.Errorf("ReadFrameWord(offset=6) = %d, want 7", got)
	}
	if got := d.ReadFrameWordUnpriv(0x2000_8000, 6); got != 7 {
		t.Errorf("ReadFrameWordUnpriv(offset=6) = %d, want 7", got)
	}
	if got := d.ReadFrameWord(0x2000_8000, 8); got != 0 {
		t.Errorf("ReadFrameWord(offset=8) = %d, want 0 (out of range)", got)
	}
	if got := d.ReadFrameWord(0xdead_beef, 0); got != 0 {
		t.Errorf("ReadFrameWord(unknown sp) = %d, want 0", got)
	}
}

func TestDecodeExcReturn(t *testing.T) {
	tests := []struct {
		name              string
		excReturn         uint32
		fromS, fromNP, fromPSP bool
	}{
		{"all clear", 0x0, false, true, false},
		{"from secure", 0x40, true, true, false},
		{"non-secure, MSP", 0x1, false, false, false},
		{"non-secure, PSP", 0x5, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, np, psp := DecodeExcReturn(tt.excReturn)
			if s != tt.fromS || np != tt.fromNP || psp != tt.fromPSP {
				t.Errorf("DecodeExcReturn(%#x) = (%v,%v,%v), want (%v,%v,%v)",
					tt.excReturn, s, np, psp, tt.fromS, tt.fromNP, tt.fromPSP)
			}
		})
	}
}

func TestSimDriverSecureFaultRoundTrip(t *testing.T) {
	d := NewSimDriver()
	d.SetSecureFault(0x2000_1000)

	sfsr := d.ReadSFSR()
	if sfsr&(sfsrAUVIOL|sfsrSFARVALID) != (sfsrAUVIOL | sfsrSFARVALID) {
		t.Fatalf("ReadSFSR() = %#x, want AUVIOL|SFARVALID set", sfsr)
	}
	if got := d.ReadSFAR(); got != 0x2000_1000 {
		t.Errorf("ReadSFAR() = %#x, want 0x2000_1000", got)
	}

	d.ClearSFSR(sfsr)
	if d.ReadSFSR() != 0 {
		t.Errorf("ReadSFSR() after ClearSFSR = %#x, want 0", d.ReadSFSR())
	}
}

func TestSimDriverEnableFaultsAndBarrier(t *testing.T) {
	d := NewSimDriver()
	if d.FaultsEnabled() {
		t.Error("FaultsEnabled() = true before EnableFaults")
	}
	if err := d.EnableFaults(); err != nil {
		t.Fatalf("EnableFaults() = %v, want nil", err)
	}
	if !d.FaultsEnabled() {
		t.Error("FaultsEnabled() = false after EnableFaults")
	}

	d.Barrier()
	d.Barrier()
	if d.Barriers() != 2 {
		t.Errorf("Barriers() = %d, want 2", d.Barriers())
	}
}
