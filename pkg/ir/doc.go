// Package ir implements the consumer infrared remote signal pipeline.
//
// A capture is an ordered sequence of mark/space pulses measured in
// microseconds. Decoding runs in four stages:
//
//	pulses ──Segment──▶ []Frame ──Demodulate──▶ []DemodulatedFrame ──DecodeFrame──▶ []DecodedFrame
//
// The fourth stage, turning decoded frames into manufacturer specific
// control codes, lives in the device package.
//
// # Protocols
//
// Three line codes are recognised by their leader pulse:
//   - AEHA (Japanese household appliance format): pulse-distance, T=440us
//   - NEC: pulse-distance, T=562us, plus a distinct repeat leader
//   - SIRC (Sony): pulse-width, T=600us
//
// Leader windows are half-open: a leader component d matches a template
// value L when L-300us <= d < L+300us.
//
// # Encoding
//
// EncodeFrame and Join perform the inverse path, and SerializeWireText
// formats pulses as the carrier-cycle hex text accepted by IR blasters.
// Encoding is lossy: measured timings collapse to the canonical pulse of
// each bit value.
//
// All functions in this package are pure and safe for concurrent use.
package ir
