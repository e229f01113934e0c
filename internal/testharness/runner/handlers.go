package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/infrared-remote/ir-go/internal/testharness/engine"
	"github.com/infrared-remote/ir-go/internal/testharness/loader"
	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/irremote"
	"github.com/infrared-remote/ir-go/pkg/irtext"
	"github.com/infrared-remote/ir-go/pkg/wire"
)

// Actions.
const (
	ActionDecode      = "decode"
	ActionEncode      = "encode"
	ActionReencode    = "reencode"
	ActionWireCapture = "wire_capture"
)

// stateResult is the Custom key holding the last decode result.
const stateResult = "result"

var errNoResult = errors.New("no decode result; run a decode step first")

func (r *Runner) registerHandlers() {
	r.engine.RegisterHandler(ActionDecode, r.handleDecode)
	r.engine.RegisterHandler(ActionEncode, r.handleEncode)
	r.engine.RegisterHandler(ActionReencode, r.handleReencode)
	r.engine.RegisterHandler(ActionWireCapture, r.handleWireCapture)
}

func stringParam(step *loader.Step, key string) string {
	if v, ok := step.Params[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// handleDecode decodes the capture in params "file" or "text". Pipeline
// errors are reported in the "error" output, not as step failures.
func (r *Runner) handleDecode(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	text := stringParam(step, "text")
	source := "inline"
	if file := stringParam(step, "file"); file != "" {
		path := resolvePath(state, file)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read capture: %w", err)
		}
		text, source = string(data), file
	}
	if text == "" {
		return nil, errors.New("decode: file or text parameter required")
	}

	format := irtext.FormatAuto
	if name := stringParam(step, "format"); name != "" {
		f, err := irtext.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		format = f
	}

	res, err := r.decoder.DecodeTextAs(format, text, source)
	if err != nil {
		delete(state.Custom, stateResult)
		return map[string]interface{}{"error": err.Error()}, nil
	}
	state.Custom[stateResult] = res
	return resultOutputs(res), nil
}

func resultOutputs(res *irremote.Result) map[string]interface{} {
	protocols := make([]string, len(res.Demodulated))
	for i, f := range res.Demodulated {
		protocols[i] = f.Protocol().String()
	}
	summaries := make([]string, len(res.Decoded))
	for i, f := range res.Decoded {
		summaries[i] = f.String()
	}
	codes := make([]map[string]interface{}, len(res.Codes))
	for i, c := range res.Codes {
		m := make(map[string]interface{})
		for k, v := range c.Fields() {
			m[k] = v
		}
		if mf := c.Manufacturer(); mf != "" {
			m["manufacturer"] = mf
		}
		codes[i] = m
	}
	return map[string]interface{}{
		"format":      res.Format.String(),
		"pulse_count": len(res.Pulses),
		"frame_count": len(res.Frames),
		"protocols":   protocols,
		"frames":      summaries,
		"decoder":     res.Decoder,
		"matched":     res.Matched(),
		"codes":       codes,
		"error":       "",
	}
}

// handleEncode encodes params "bits" (a string or list) as frames of
// params "protocol".
func (r *Runner) handleEncode(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	p, err := ir.ParseProtocol(stringParam(step, "protocol"))
	if err != nil {
		return nil, err
	}

	var bits []string
	switch v := step.Params["bits"].(type) {
	case []interface{}:
		for _, b := range v {
			bits = append(bits, fmt.Sprintf("%v", b))
		}
	case nil:
		bits = []string{""}
	default:
		bits = []string{fmt.Sprintf("%v", v)}
	}

	frames, err := irremote.FramesFromBits(p, bits...)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	return r.encodeOutputs(frames)
}

func (r *Runner) encodeOutputs(frames []ir.DemodulatedFrame) (map[string]interface{}, error) {
	pulses, err := r.encoder.Encode(frames)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	return map[string]interface{}{
		"wire_text":   ir.SerializeWireText(pulses),
		"pulse_count": len(pulses),
		"error":       "",
	}, nil
}

// handleReencode encodes the frames of the last decode result and decodes
// the wire text again. "roundtrip" reports whether the frames and codes
// survived.
func (r *Runner) handleReencode(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	prev, ok := state.Custom[stateResult].(*irremote.Result)
	if !ok {
		return nil, errNoResult
	}

	text, err := r.encoder.EncodeWireText(prev.Demodulated)
	if err != nil {
		return map[string]interface{}{"error": err.Error(), "roundtrip": false}, nil
	}
	next, err := r.decoder.DecodeTextAs(irtext.FormatHex, text, "reencode")
	if err != nil {
		return map[string]interface{}{"error": err.Error(), "wire_text": text, "roundtrip": false}, nil
	}

	return map[string]interface{}{
		"wire_text": text,
		"roundtrip": reflect.DeepEqual(prev.Demodulated, next.Demodulated) &&
			reflect.DeepEqual(fieldsOf(prev), fieldsOf(next)),
		"error": "",
	}, nil
}

func fieldsOf(res *irremote.Result) []string {
	out := make([]string, len(res.Codes))
	for i, c := range res.Codes {
		out[i] = fmt.Sprintf("%s%v", c.Manufacturer(), c.Fields())
	}
	return out
}

// handleWireCapture round-trips the last decode result through the CBOR
// capture format.
func (r *Runner) handleWireCapture(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	prev, ok := state.Custom[stateResult].(*irremote.Result)
	if !ok {
		return nil, errNoResult
	}

	data, err := wire.EncodeCapture(wire.NewCapture(prev.CaptureID, prev.Demodulated, prev.Codes))
	if err != nil {
		return nil, err
	}
	back, err := wire.DecodeCapture(data)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	frames, err := back.DemodulatedFrames()
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}

	manufacturers := make([]string, len(back.Codes))
	for i, c := range back.Codes {
		manufacturers[i] = c.Manufacturer
	}
	return map[string]interface{}{
		"cbor_size":     len(data),
		"roundtrip":     reflect.DeepEqual(frames, prev.Demodulated),
		"manufacturers": strings.Join(manufacturers, ","),
		"error":         "",
	}, nil
}
