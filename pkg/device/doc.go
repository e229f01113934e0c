// Package device turns protocol frames into manufacturer specific control
// codes.
//
// Each supported remote is a Decoder. A Registry tries its decoders in
// priority order and returns the codes of the first one that recognises
// the input; when none does, the frames are wrapped in a single Unknown
// code. Decoders never fail: input they do not recognise yields no codes.
//
// AEHA based air conditioners are identified by a constant header at the
// start of every frame. Payload fields are read from the frame bytes (bits
// folded LSB-first, stop bit excluded) at fixed offsets. A raw value that
// is not in a device's table leaves the field unset unless the same bits
// are part of the header check, in which case the whole frame group is
// rejected.
//
// Default priority order:
//  1. Toshiba TV (NEC)
//  2. Sony (SIRC)
//  3. Panasonic air conditioner
//  4. Daikin air conditioner
//  5. Hitachi air conditioner
//  6. Mitsubishi Electric air conditioner
package device
