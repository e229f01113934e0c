// Package commands implements the ir-decode CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/irtext"
	"github.com/infrared-remote/ir-go/pkg/wire"
)

// Output formats for decode results.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputCBOR = "cbor"
)

// ErrUnknownOutput is returned for an unsupported -output value.
var ErrUnknownOutput = errors.New("unknown output format")

// ReadInput resolves a capture argument: "-" reads stdin, "@path" reads a
// file, anything else is the capture text itself. It returns the text and
// a source name for the trace.
func ReadInput(arg string, stdin io.Reader) (text, source string, err error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	case strings.HasPrefix(arg, "@"):
		path := arg[1:]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read capture: %w", err)
		}
		return string(data), path, nil
	default:
		return arg, "argument", nil
	}
}

// DecodeOptions controls RunDecode.
type DecodeOptions struct {
	Format irtext.Format
	Output string
}

// RunDecode decodes each input and writes the results to w. A single input
// is decoded directly; several inputs are decoded concurrently and written
// in argument order.
func RunDecode(ctx context.Context, dec *irremote.Decoder, inputs []string, opts DecodeOptions, stdin io.Reader, w io.Writer) error {
	switch opts.Output {
	case "", OutputText, OutputJSON, OutputCBOR:
	default:
		return fmt.Errorf("%w: %s (supported: text, json, cbor)", ErrUnknownOutput, opts.Output)
	}
	if len(inputs) == 0 {
		return errors.New("no capture given")
	}

	if len(inputs) == 1 {
		text, source, err := ReadInput(inputs[0], stdin)
		if err != nil {
			return err
		}
		res, err := dec.DecodeTextAs(opts.Format, text, source)
		if err != nil {
			return err
		}
		return WriteResult(w, opts.Output, res)
	}

	texts := make([]string, len(inputs))
	for i, arg := range inputs {
		text, _, err := ReadInput(arg, stdin)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		texts[i] = text
	}
	results := dec.DecodeBatch(ctx, texts)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if opts.Output == "" || opts.Output == OutputText {
			fmt.Fprintf(w, "# %s\n", inputs[r.Index])
		}
		if err := WriteResult(w, opts.Output, r.Result); err != nil {
			return err
		}
	}
	return irremote.FirstError(results)
}

// WriteResult writes res to w in the given output format.
func WriteResult(w io.Writer, output string, res *irremote.Result) error {
	switch output {
	case "", OutputText:
		writeText(w, res)
		return nil
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ViewOf(res))
	case OutputCBOR:
		data, err := wire.EncodeCapture(wire.NewCapture(res.CaptureID, res.Demodulated, res.Codes))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}
}

// ResultView is the JSON form of a decode result.
type ResultView struct {
	CaptureID string              `json:"capture_id"`
	Format    string              `json:"format,omitempty"`
	Pulses    int                 `json:"pulses"`
	Frames    []FrameView         `json:"frames"`
	Decoder   string              `json:"decoder,omitempty"`
	Codes     []map[string]string `json:"codes"`
}

// FrameView is the JSON form of one frame.
type FrameView struct {
	Protocol string `json:"protocol"`
	Bits     string `json:"bits,omitempty"`
	Decoded  string `json:"decoded"`
}

// ViewOf flattens res for display.
func ViewOf(res *irremote.Result) ResultView {
	v := ResultView{
		CaptureID: res.CaptureID,
		Pulses:    len(res.Pulses),
		Frames:    make([]FrameView, len(res.Decoded)),
		Decoder:   res.Decoder,
		Codes:     make([]map[string]string, len(res.Codes)),
	}
	if res.Format != irtext.FormatAuto {
		v.Format = res.Format.String()
	}
	for i, f := range res.Decoded {
		v.Frames[i] = FrameView{
			Protocol: f.Protocol().String(),
			Bits:     bitsOf(res, i),
			Decoded:  f.String(),
		}
	}
	for i, c := range res.Codes {
		v.Codes[i] = c.Fields()
	}
	return v
}

func bitsOf(res *irremote.Result, i int) string {
	if i >= len(res.Demodulated) {
		return ""
	}
	switch f := res.Demodulated[i].(type) {
	case ir.AEHAFrame:
		return f.Bits.String()
	case ir.NECFrame:
		return f.Bits.String()
	case ir.SIRCFrame:
		return f.Bits.String()
	}
	return ""
}

func writeText(w io.Writer, res *irremote.Result) {
	v := ViewOf(res)
	fmt.Fprintf(w, "Capture: %s\n", v.CaptureID)
	if v.Format != "" {
		fmt.Fprintf(w, "Format:  %s\n", v.Format)
	}
	fmt.Fprintf(w, "Pulses:  %d\n", v.Pulses)
	fmt.Fprintf(w, "Frames:  %d\n", len(v.Frames))
	for i, f := range v.Frames {
		fmt.Fprintf(w, "  [%d] %s\n", i, f.Decoded)
		if f.Bits != "" {
			fmt.Fprintf(w, "      bits %s\n", f.Bits)
		}
	}
	if v.Decoder == "" {
		fmt.Fprintln(w, "Decoder: (none)")
	} else {
		fmt.Fprintf(w, "Decoder: %s\n", v.Decoder)
	}
	for i, fields := range v.Codes {
		fmt.Fprintf(w, "Code %d:\n", i)
		writeFields(w, fields)
	}
}

func writeFields(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-18s %s\n", k, fields[k])
	}
}
