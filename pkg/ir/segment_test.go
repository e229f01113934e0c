package ir

import (
	"errors"
	"testing"
)

func TestSegmentEmpty(t *testing.T) {
	if _, err := Segment(nil); !errors.Is(err, ErrInputIsEmpty) {
		t.Errorf("Segment(nil) error = %v, want ErrInputIsEmpty", err)
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name   string
		pulses []Pulse
		sizes  []int
	}{
		{
			name:   "no gap",
			pulses: []Pulse{{9000, 4473}, {605, 552}, {631, 526}, {631, 552}},
			sizes:  []int{4},
		},
		{
			name:   "gap splits",
			pulses: []Pulse{{100, 100}, {100, 8000}, {100, 100}},
			sizes:  []int{2, 1},
		},
		{
			name:   "below threshold",
			pulses: []Pulse{{100, 7999}, {100, 100}},
			sizes:  []int{2},
		},
		{
			name:   "trailing gap",
			pulses: []Pulse{{100, 100}, {100, 35000}},
			sizes:  []int{2},
		},
		{
			name:   "every pulse a gap",
			pulses: []Pulse{{1, 9000}, {1, 9000}, {1, 9000}},
			sizes:  []int{1, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Segment(tt.pulses)
			if err != nil {
				t.Fatalf("Segment failed: %v", err)
			}
			if len(frames) != len(tt.sizes) {
				t.Fatalf("got %d frames, want %d", len(frames), len(tt.sizes))
			}
			total := 0
			for i, f := range frames {
				if len(f) != tt.sizes[i] {
					t.Errorf("frame %d has %d pulses, want %d", i, len(f), tt.sizes[i])
				}
				for _, p := range f {
					if p != tt.pulses[total] {
						t.Errorf("pulse %d = %v, want %v", total, p, tt.pulses[total])
					}
					total++
				}
			}
		})
	}
}

func TestSegmentCopies(t *testing.T) {
	in := []Pulse{{100, 100}, {100, 9000}}
	frames, err := Segment(in)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	frames[0][0].Mark = 1
	if in[0].Mark != 100 {
		t.Error("Segment output aliases its input")
	}
}
