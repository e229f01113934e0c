package ir

import (
	"math"
	"strconv"
)

// CarrierFrequency is the modulation carrier frequency in Hz.
const CarrierFrequency = 38000

// Micros is a duration in microseconds.
type Micros uint32

// Cycles is a duration counted in carrier periods (38 kHz).
type Cycles uint16

// Add returns d+o.
func (d Micros) Add(o Micros) Micros {
	return d + o
}

// Sub returns d-o, clamped at zero.
func (d Micros) Sub(o Micros) Micros {
	if o > d {
		return 0
	}
	return d - o
}

// Cycles converts d to carrier cycles, truncating.
// Durations longer than math.MaxUint16 cycles saturate.
func (d Micros) Cycles() Cycles {
	c := uint64(d) * CarrierFrequency / 1_000_000
	if c > math.MaxUint16 {
		return math.MaxUint16
	}
	return Cycles(c)
}

// String returns the duration with a "us" suffix.
func (d Micros) String() string {
	return strconv.FormatUint(uint64(d), 10) + "us"
}

// Add returns c+o.
func (c Cycles) Add(o Cycles) Cycles {
	return c + o
}

// Sub returns c-o, clamped at zero.
func (c Cycles) Sub(o Cycles) Cycles {
	if o > c {
		return 0
	}
	return c - o
}

// Micros converts c to microseconds, truncating.
func (c Cycles) Micros() Micros {
	return Micros(uint64(c) * 1_000_000 / CarrierFrequency)
}

// String returns the cycle count as 0x-prefixed hex.
func (c Cycles) String() string {
	return "0x" + strconv.FormatUint(uint64(c), 16)
}
