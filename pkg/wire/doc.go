// Package wire defines the CBOR record format for decode results.
//
// A Capture holds the demodulated frames and control codes of one decoded
// transmission. Records use CBOR (RFC 8949) with integer keys and
// deterministic encoding, so equal captures encode to equal bytes.
//
// Frame bits are packed LSB-first, eight to a byte, with an explicit bit
// count. Unknown frames keep their raw pulses instead, flattened as
// alternating mark and space microseconds.
//
// A Capture record can be turned back into demodulated frames and
// re-encoded, which is how the ir-decode CLI replays saved results.
package wire
