package ir

import (
	"fmt"
	"slices"
)

// Duration is the set of duration representations a pulse can carry.
type Duration interface {
	Micros | Cycles
}

// MarkSpace is one emitting (mark) period followed by one idle (space) period.
type MarkSpace[T Duration] struct {
	Mark  T
	Space T
}

// Add returns the component-wise sum of p and q.
func (p MarkSpace[T]) Add(q MarkSpace[T]) MarkSpace[T] {
	return MarkSpace[T]{Mark: p.Mark + q.Mark, Space: p.Space + q.Space}
}

// Sub returns the component-wise difference of p and q, clamped at zero.
func (p MarkSpace[T]) Sub(q MarkSpace[T]) MarkSpace[T] {
	return MarkSpace[T]{Mark: clampSub(p.Mark, q.Mark), Space: clampSub(p.Space, q.Space)}
}

// String returns "(mark, space)".
func (p MarkSpace[T]) String() string {
	return fmt.Sprintf("(%v, %v)", p.Mark, p.Space)
}

func clampSub[T Duration](a, b T) T {
	if b > a {
		return 0
	}
	return a - b
}

// Pulse is a mark/space pair in microseconds.
type Pulse = MarkSpace[Micros]

// CarrierPulse is a mark/space pair in carrier cycles.
type CarrierPulse = MarkSpace[Cycles]

// ToCarrier converts a microsecond pulse to carrier cycles.
func ToCarrier(p Pulse) CarrierPulse {
	return CarrierPulse{Mark: p.Mark.Cycles(), Space: p.Space.Cycles()}
}

// FromCarrier converts a carrier-cycle pulse to microseconds.
func FromCarrier(c CarrierPulse) Pulse {
	return Pulse{Mark: c.Mark.Micros(), Space: c.Space.Micros()}
}

// Frame is a non-empty run of pulses. The first pulse is the leader.
type Frame []Pulse

// Leader returns the first pulse of the frame.
// It returns the zero Pulse for an empty frame.
func (f Frame) Leader() Pulse {
	if len(f) == 0 {
		return Pulse{}
	}
	return f[0]
}

// Payload returns the pulses after the leader.
func (f Frame) Payload() []Pulse {
	if len(f) == 0 {
		return nil
	}
	return f[1:]
}

// Clone returns a copy of f that shares no memory with it.
func (f Frame) Clone() Frame {
	return slices.Clone(f)
}
