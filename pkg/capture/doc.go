// Package capture provides a persistent library of named IR captures.
//
// Each entry stores the raw input text together with its demodulated frame
// summary and decoded control codes, and is identified by a UUID. Entries
// carry a fingerprint of their demodulated frames, so re-captures of the
// same button with different timing jitter are recognised as duplicates.
// The library is a single JSON file.
package capture
