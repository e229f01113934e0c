package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Capture records use canonical key order so that equal pipeline output
// always encodes to equal bytes; pkg/capture fingerprints rely on this.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

// maxRecordFrames bounds the frame array of a decoded record.
const maxRecordFrames = 4096

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: encoder mode: %v", err))
	}

	// Unknown keys are skipped so newer records stay readable.
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		MaxArrayElements:  maxRecordFrames * 2,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: decoder mode: %v", err))
	}
}

// Marshal encodes v with the record encoding options.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data with the record decoding options.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// WriteCaptures writes records back to back to w.
func WriteCaptures(w io.Writer, captures ...*Capture) error {
	enc := encMode.NewEncoder(w)
	for i, c := range captures {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("write capture %d: %w", i, err)
		}
	}
	return nil
}

// ReadCaptures reads every record of a stream written by WriteCaptures or
// by concatenating EncodeCapture output.
func ReadCaptures(r io.Reader) ([]*Capture, error) {
	dec := decMode.NewDecoder(r)
	var out []*Capture
	for {
		var c Capture
		err := dec.Decode(&c)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read capture %d: %w", len(out), err)
		}
		if c.Version != FormatVersion {
			return nil, fmt.Errorf("read capture %d: %w: %d", len(out), ErrUnsupportedVersion, c.Version)
		}
		out = append(out, &c)
	}
}
