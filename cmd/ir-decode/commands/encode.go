package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/wire"
)

// RunEncode builds one frame of protocol per bit string and writes the
// wire text of the whole transmission to w.
func RunEncode(enc *irremote.Encoder, protocol string, bits []string, w io.Writer) error {
	p, err := ir.ParseProtocol(protocol)
	if err != nil {
		return err
	}
	if len(bits) == 0 && p != ir.ProtocolNECRepeat {
		return errors.New("no bit string given")
	}
	if len(bits) == 0 {
		bits = []string{""}
	}
	frames, err := irremote.FramesFromBits(p, bits...)
	if err != nil {
		return err
	}
	text, err := enc.EncodeWireText(frames)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

// RunReencode reads a stream of CBOR capture records, as written by
// "decode -output cbor", and writes one line of wire text per record to w.
func RunReencode(enc *irremote.Encoder, r io.Reader, w io.Writer) error {
	captures, err := wire.ReadCaptures(r)
	if err != nil {
		return err
	}
	if len(captures) == 0 {
		return errors.New("no capture records in input")
	}
	for i, c := range captures {
		frames, err := c.DemodulatedFrames()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		text, err := enc.EncodeWireText(frames)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
