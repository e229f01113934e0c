package device

import (
	"bytes"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

// fullBytes returns the complete 8-bit octets of f folded LSB-first.
// A trailing partial octet is dropped.
func fullBytes(f ir.AEHA) []byte {
	n := len(f.Octets)
	if n > 0 && len(f.Octets[n-1]) < 8 {
		n--
	}
	return ir.Bytes(f.Octets[:n])
}

// aehaWithHeader returns the payload bytes of every AEHA frame starting
// with header, in input order.
func aehaWithHeader(frames []ir.DecodedFrame, header []byte) [][]byte {
	var out [][]byte
	for _, f := range frames {
		a, ok := f.(ir.AEHA)
		if !ok {
			continue
		}
		b := fullBytes(a)
		if bytes.HasPrefix(b, header) {
			out = append(out, b)
		}
	}
	return out
}

func hi(b byte) byte { return b >> 4 }
func lo(b byte) byte { return b & 0x0f }
