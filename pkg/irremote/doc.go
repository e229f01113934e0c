// Package irremote ties the decoding pipeline together.
//
// A Decoder runs captured pulses through segmentation, demodulation, frame
// decoding and device decoding, and returns every intermediate result. An
// Encoder turns demodulated frames back into pulses or wire text.
//
// Both emit a decode trace (see package log) tagged with a capture ID, and
// operational debug logs through slog. Both are disabled by default.
//
//	dec, err := irremote.NewDecoder(irremote.DefaultConfig())
//	res, err := dec.DecodeText("5601AA00 ...")
//	for _, code := range res.Codes {
//	    fmt.Println(code.Manufacturer(), code.Fields())
//	}
package irremote
