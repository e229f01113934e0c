package irremote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/irtext"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// Result holds every stage output of one decoded capture.
type Result struct {
	// CaptureID tags the trace events of this capture.
	CaptureID string

	// Format is the text format the input was parsed from, if any.
	Format irtext.Format

	Pulses      []ir.Pulse
	Frames      []ir.Frame
	Demodulated []ir.DemodulatedFrame
	Decoded     []ir.DecodedFrame

	// Decoder is the name of the matching device decoder, empty when the
	// codes are a single device.Unknown.
	Decoder string
	Codes   []device.ControlCode
}

// Matched reports whether a device decoder recognised the capture.
func (r *Result) Matched() bool { return r.Decoder != "" }

// Decoder runs captures through the decoding pipeline.
// It is safe for concurrent use.
type Decoder struct {
	registry *device.Registry
	logger   *slog.Logger
	trace    log.Logger
	workers  int
}

// NewDecoder creates a decoder from cfg.
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Decoder{
		registry: cfg.Registry,
		logger:   cfg.Logger,
		trace:    cfg.TraceLogger,
		workers:  cfg.Workers,
	}, nil
}

func (d *Decoder) newTracer(source string) *tracer {
	return &tracer{sink: d.trace, logger: d.logger, captureID: uuid.NewString(), source: source}
}

// Decode runs pulses through the pipeline.
func (d *Decoder) Decode(pulses []ir.Pulse) (*Result, error) {
	t := d.newTracer("")
	t.input("", "", len(pulses))
	return d.run(t, &Result{CaptureID: t.captureID, Pulses: pulses})
}

// DecodeText parses text in any supported format and decodes it.
func (d *Decoder) DecodeText(text string) (*Result, error) {
	return d.DecodeTextAs(irtext.FormatAuto, text, "")
}

// DecodeTextAs parses text in the given format and decodes it. Source is
// recorded in the trace.
func (d *Decoder) DecodeTextAs(format irtext.Format, text, source string) (*Result, error) {
	t := d.newTracer(source)
	if format == irtext.FormatAuto {
		detected, err := irtext.Detect(text)
		if err != nil {
			t.failed(log.StageInput, "detect format", err)
			return nil, fmt.Errorf("input: %w", err)
		}
		format = detected
	}
	pulses, err := irtext.ParseAs(format, text)
	if err != nil {
		t.failed(log.StageInput, "parse "+format.String(), err)
		return nil, fmt.Errorf("input: %w", err)
	}
	t.input(format.String(), text, len(pulses))
	return d.run(t, &Result{CaptureID: t.captureID, Format: format, Pulses: pulses})
}

func (d *Decoder) run(t *tracer, res *Result) (*Result, error) {
	frames, err := ir.Segment(res.Pulses)
	if err != nil {
		t.failed(log.StageSegment, "", err)
		return nil, fmt.Errorf("segment: %w", err)
	}
	res.Frames = frames
	t.segmented(frames)

	res.Demodulated = make([]ir.DemodulatedFrame, len(frames))
	for i, f := range frames {
		res.Demodulated[i] = ir.Demodulate(f)
		t.demodulated(i, f, res.Demodulated[i])
	}

	res.Decoded = make([]ir.DecodedFrame, 0, len(frames))
	for i, f := range res.Demodulated {
		df, err := ir.DecodeFrame(f)
		if err != nil {
			t.failed(log.StageFrame, fmt.Sprintf("frame %d", i), err)
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		res.Decoded = append(res.Decoded, df)
		t.decoded(i, df)
	}

	matched, codes := d.registry.Match(res.Decoded)
	if matched == nil {
		codes = []device.ControlCode{device.Unknown{Frames: res.Decoded}}
	} else {
		res.Decoder = matched.Name()
	}
	res.Codes = codes
	t.codes(matched, codes)
	return res, nil
}

// BatchResult is the outcome of one DecodeBatch input.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// DecodeBatch decodes texts concurrently, bounded by Config.Workers.
// Results are in input order. Inputs not started before ctx is done get
// ctx.Err().
func (d *Decoder) DecodeBatch(ctx context.Context, texts []string) []BatchResult {
	results := make([]BatchResult, len(texts))
	var g errgroup.Group
	g.SetLimit(d.workers)

	for i, text := range texts {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = d.DecodeTextAs(irtext.FormatAuto, text, fmt.Sprintf("batch[%d]", i))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FirstError returns the first error in results, if any.
func FirstError(results []BatchResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("input %d: %w", r.Index, r.Err)
		}
	}
	return nil
}
