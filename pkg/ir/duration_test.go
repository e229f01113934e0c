package ir

import "testing"

func TestMicrosCycles(t *testing.T) {
	tests := []struct {
		us     Micros
		cycles Cycles
	}{
		{0, 0},
		{9000, 0x156},
		{4473, 0xA9},
		{562, 21},
		{8000, 0x130},
		{2_000_000, 0xFFFF},
	}
	for _, tt := range tests {
		if got := tt.us.Cycles(); got != tt.cycles {
			t.Errorf("Micros(%d).Cycles() = %#x, want %#x", tt.us, got, tt.cycles)
		}
	}
}

func TestCyclesMicros(t *testing.T) {
	tests := []struct {
		cycles Cycles
		us     Micros
	}{
		{0, 0},
		{0x156, 9000},
		{0xAA, 4473},
		{0x0017, 605},
		{0xFFFF, 1724605},
	}
	for _, tt := range tests {
		if got := tt.cycles.Micros(); got != tt.us {
			t.Errorf("Cycles(%#x).Micros() = %d, want %d", tt.cycles, got, tt.us)
		}
	}
}

func TestDurationArithmetic(t *testing.T) {
	if got := Micros(10).Sub(20); got != 0 {
		t.Errorf("Micros(10).Sub(20) = %d, want 0", got)
	}
	if got := Cycles(3).Sub(1); got != 2 {
		t.Errorf("Cycles(3).Sub(1) = %d, want 2", got)
	}
	p := Pulse{Mark: 100, Space: 50}.Sub(Pulse{Mark: 40, Space: 60})
	if p != (Pulse{Mark: 60, Space: 0}) {
		t.Errorf("Pulse.Sub = %v, want (60us, 0us)", p)
	}
	if got := (Pulse{Mark: 1, Space: 2}).Add(Pulse{Mark: 3, Space: 4}); got != (Pulse{Mark: 4, Space: 6}) {
		t.Errorf("Pulse.Add = %v", got)
	}
}

func TestPulseString(t *testing.T) {
	if got := (Pulse{Mark: 9000, Space: 4500}).String(); got != "(9000us, 4500us)" {
		t.Errorf("Pulse.String() = %q", got)
	}
}
