package vmpu

import "testing"

func TestRegionContains(t *testing.T) {
	r := Region{Start: 0x2000_0000, End: 0x2000_0100}

	tests := []struct {
		name string
		addr uint32
		size uint32
		want bool
	}{
		{"at start, word", 0x2000_0000, 4, true},
		{"just before end, word", 0x2000_00fc, 4, true},
		{"spans past end", 0x2000_00fe, 4, false},
		{"before start", 0x1fff_fffc, 4, false},
		{"at end, zero length never inside", 0x2000_0100, 0, false},
		{"exactly covers region", 0x2000_0000, 0x100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.addr, tt.size); got != tt.want {
				t.Errorf("Contains(0x%x, %d) = %v, want %v", tt.addr, tt.size, got, tt.want)
			}
		})
	}
}

func TestRegionSize(t *testing.T) {
	r := Region{Start: 0x1000, End: 0x1400}
	if got := r.Size(); got != 0x400 {
		t.Errorf("Size() = 0x%x, want 0x400", got)
	}
}

func TestFaultKindString(t *testing.T) {
	tests := []struct {
		kind FaultKind
		want string
	}{
		{FaultNMI, "NMI"},
		{FaultHard, "HardFault"},
		{FaultSecure, "SecureFault"},
		{FaultNotSystemIRQ, "NotSystemIRQ"},
		{FaultKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 32},
		{31, 32},
		{32, 32},
		{33, 64},
		{200, 224},
	}
	for _, tt := range tests {
		if got := roundUp(tt.in); got != tt.want {
			t.Errorf("roundUp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
