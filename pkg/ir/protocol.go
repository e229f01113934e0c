package ir

import (
	"fmt"
	"strings"
)

// Protocol identifies the line code a frame was transmitted with.
type Protocol uint8

const (
	// ProtocolUnknown is used when no leader template matched.
	ProtocolUnknown Protocol = 0
	// ProtocolAEHA is the Japanese household appliance format.
	ProtocolAEHA Protocol = 1
	// ProtocolNEC is the NEC format.
	ProtocolNEC Protocol = 2
	// ProtocolNECRepeat is the zero-payload NEC repeat marker.
	ProtocolNECRepeat Protocol = 3
	// ProtocolSIRC is the Sony format.
	ProtocolSIRC Protocol = 4
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolAEHA:
		return "AEHA"
	case ProtocolNEC:
		return "NEC"
	case ProtocolNECRepeat:
		return "NEC_REPEAT"
	case ProtocolSIRC:
		return "SIRC"
	default:
		return "UNKNOWN"
	}
}

// ParseProtocol parses a protocol name case-insensitively.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aeha":
		return ProtocolAEHA, nil
	case "nec":
		return ProtocolNEC, nil
	case "nec_repeat", "nec-repeat", "repeat":
		return ProtocolNECRepeat, nil
	case "sirc", "sony":
		return ProtocolSIRC, nil
	default:
		return ProtocolUnknown, fmt.Errorf("%w: %q", ErrUnknownProtocol, s)
	}
}

// ThresholdFrameGap is the minimum space that ends a frame.
const ThresholdFrameGap Micros = 8000

// Tolerance is the half-width of every leader window.
const Tolerance Micros = 300

// Timing holds the canonical pulses of a protocol.
type Timing struct {
	// Unit is the protocol time base T.
	Unit Micros
	// Leader is the canonical leader pulse.
	Leader Pulse
	// Zero and One are the canonical pulses for Lo and Hi.
	Zero Pulse
	One  Pulse
}

const (
	aehaUnit Micros = 440
	necUnit  Micros = 562
	sircUnit Micros = 600
)

var (
	aehaTiming = Timing{
		Unit:   aehaUnit,
		Leader: Pulse{Mark: 8 * aehaUnit, Space: 4 * aehaUnit},
		Zero:   Pulse{Mark: aehaUnit, Space: aehaUnit},
		One:    Pulse{Mark: aehaUnit, Space: 3 * aehaUnit},
	}
	necTiming = Timing{
		Unit:   necUnit,
		Leader: Pulse{Mark: 16 * necUnit, Space: 8 * necUnit},
		Zero:   Pulse{Mark: necUnit, Space: necUnit},
		One:    Pulse{Mark: necUnit, Space: 3 * necUnit},
	}
	// The repeat frame is a leader followed by a single stop mark.
	necRepeatTiming = Timing{
		Unit:   necUnit,
		Leader: Pulse{Mark: 16 * necUnit, Space: 4 * necUnit},
		Zero:   Pulse{Mark: necUnit, Space: necUnit},
		One:    Pulse{Mark: necUnit, Space: necUnit},
	}
	sircTiming = Timing{
		Unit:   sircUnit,
		Leader: Pulse{Mark: 4 * sircUnit, Space: sircUnit},
		Zero:   Pulse{Mark: sircUnit, Space: sircUnit},
		One:    Pulse{Mark: 2 * sircUnit, Space: sircUnit},
	}
)

// TimingOf returns the canonical timing of p.
func TimingOf(p Protocol) (Timing, bool) {
	switch p {
	case ProtocolAEHA:
		return aehaTiming, true
	case ProtocolNEC:
		return necTiming, true
	case ProtocolNECRepeat:
		return necRepeatTiming, true
	case ProtocolSIRC:
		return sircTiming, true
	default:
		return Timing{}, false
	}
}

// window is the half-open interval [lo, hi).
type window struct {
	lo, hi Micros
}

func around(center Micros) window {
	return window{lo: center.Sub(Tolerance), hi: center.Add(Tolerance)}
}

func (w window) contains(d Micros) bool {
	return w.lo <= d && d < w.hi
}

type leaderTemplate struct {
	protocol    Protocol
	mark, space window
}

func newLeaderTemplate(p Protocol, leader Pulse) leaderTemplate {
	return leaderTemplate{protocol: p, mark: around(leader.Mark), space: around(leader.Space)}
}

func (t leaderTemplate) matches(p Pulse) bool {
	return t.mark.contains(p.Mark) && t.space.contains(p.Space)
}

// Checked in order; the first match wins.
var leaderTemplates = [...]leaderTemplate{
	newLeaderTemplate(ProtocolAEHA, aehaTiming.Leader),
	newLeaderTemplate(ProtocolNEC, necTiming.Leader),
	newLeaderTemplate(ProtocolSIRC, sircTiming.Leader),
	newLeaderTemplate(ProtocolNECRepeat, necRepeatTiming.Leader),
}

// Classify identifies the protocol of a frame from its leader pulse.
func Classify(leader Pulse) Protocol {
	for _, t := range leaderTemplates {
		if t.matches(leader) {
			return t.protocol
		}
	}
	return ProtocolUnknown
}
