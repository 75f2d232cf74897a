package vmpu

import "testing"

func TestRegionTableFindForAddress(t *testing.T) {
	rt := newRegionTable()
	rt.AddStaticACL(1, 0x2000_0000, 0x100, ACLDefaultData, 0)
	rt.AddStaticACL(1, 0x2000_1000, 0x100, ACLDefaultStack, 0)

	tests := []struct {
		name      string
		box       BoxID
		addr      uint32
		wantFound bool
		wantStart uint32
	}{
		{"inside first region", 1, 0x2000_0050, true, 0x2000_0000},
		{"inside second region", 1, 0x2000_1050, true, 0x2000_1000},
		{"between regions", 1, 0x2000_0200, false, 0},
		{"unknown box", 7, 0x2000_0050, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := rt.FindForAddress(tt.box, tt.addr)
			if ok != tt.wantFound {
				t.Fatalf("FindForAddress(%#x) ok = %v, want %v", tt.addr, ok, tt.wantFound)
			}
			if ok && r.Start != tt.wantStart {
				t.Errorf("FindForAddress(%#x) start = %#x, want %#x", tt.addr, r.Start, tt.wantStart)
			}
		})
	}

	if _, ok := rt.FindForAddress(7, 0x2000_0050); ok {
		t.Error("FindForAddress on an empty box should report false")
	}
}

func TestFindFaultRegionPrefersActiveBoxOverPublic(t *testing.T) {
	rt := newRegionTable()
	rt.AddStaticACL(PublicBox, 0x0c00_0000, 0x1000, ACLUserRead|ACLUserExecute, 0)
	rt.AddStaticACL(2, 0x2000_0000, 0x100, ACLDefaultData, 0)

	r, ok := rt.findFaultRegion(2, 0x2000_0050)
	if !ok || r.Start != 0x2000_0000 {
		t.Fatalf("expected active box 2's region, got %+v ok=%v", r, ok)
	}

	r, ok = rt.findFaultRegion(2, 0x0c00_0050)
	if !ok || r.Start != 0x0c00_0000 {
		t.Fatalf("expected fallback to public box's region, got %+v ok=%v", r, ok)
	}

	if _, ok := rt.findFaultRegion(2, 0xdead_beef); ok {
		t.Error("findFaultRegion should report false when neither box covers addr")
	}
}

func TestFindFaultRegionPublicBoxOnlyChecksPublic(t *testing.T) {
	rt := newRegionTable()
	rt.AddStaticACL(PublicBox, 0x0c00_0000, 0x1000, ACLUserRead|ACLUserExecute, 0)

	r, ok := rt.findFaultRegion(PublicBox, 0x0c00_0050)
	if !ok || r.Start != 0x0c00_0000 {
		t.Fatalf("expected public region, got %+v ok=%v", r, ok)
	}
}
