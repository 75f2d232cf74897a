package vmpu

import "testing"

func TestTranslateBitband(t *testing.T) {
	tests := []struct {
		name string
		addr uint32
		want uint32
	}{
		{"sram alias start maps to sram base", sramBitbandStart, sramBase},
		{"sram alias, byte offset 1 (32 bytes in)", sramBitbandStart + 32, sramBase + 1},
		{"sram alias, bit 7 of byte 1 stays within that byte", sramBitbandStart + 32 + 28, sramBase + 1},
		{"peripheral alias start maps to peripheral base", peripheralBitbandStart, peripheralBase},
		{"peripheral alias, byte offset 3", peripheralBitbandStart + 96, peripheralBase + 3},
		{"address outside either window is unchanged", 0x1000_0000, 0x1000_0000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateBitband(tt.addr); got != tt.want {
				t.Errorf("translateBitband(%#x) = %#x, want %#x", tt.addr, got, tt.want)
			}
		})
	}
}

func TestInBitbandWindow(t *testing.T) {
	tests := []struct {
		addr uint32
		want bool
	}{
		{sramBitbandStart, true},
		{sramBitbandEnd, true},
		{peripheralBitbandStart, true},
		{peripheralBitbandEnd, true},
		{sramBase, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := inBitbandWindow(tt.addr); got != tt.want {
			t.Errorf("inBitbandWindow(%#x) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}
