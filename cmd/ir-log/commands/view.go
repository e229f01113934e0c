// Package commands implements the ir-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	CaptureID string
	Stage     *log.Stage
	Category  *log.Category
	Protocol  *ir.Protocol
}

func (f ViewFilter) toFilter() log.Filter {
	return log.Filter{
		CaptureID: f.CaptureID,
		Stage:     f.Stage,
		Category:  f.Category,
		Protocol:  f.Protocol,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// timestamp [cap:id] STAGE CATEGORY [frame n PROTOCOL]
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [cap:%s] %-7s %s", ts, shortenID(event.CaptureID), event.Stage, event.Category)
	if event.FrameIndex != nil {
		fmt.Fprintf(w, " frame %d", *event.FrameIndex)
	}
	if event.Protocol != nil {
		fmt.Fprintf(w, " %s", event.Protocol)
	}
	fmt.Fprintln(w)

	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.Input != nil:
		formatInputDetails(w, event.Input)
	case event.Segment != nil:
		fmt.Fprintf(w, "  Frames: %d %v\n", len(event.Segment.FrameSizes), event.Segment.FrameSizes)
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Device != nil:
		formatDeviceDetails(w, event.Device)
	case event.Encode != nil:
		fmt.Fprintf(w, "  Frames: %d  Pulses: %d\n", event.Encode.Frames, event.Encode.Pulses)
		writeText(w, "Wire", event.Encode.WireText, event.Encode.Truncated)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func writeText(w io.Writer, label, text string, truncated bool) {
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s: %s", label, text)
	if truncated {
		fmt.Fprint(w, " (truncated)")
	}
	fmt.Fprintln(w)
}

func formatInputDetails(w io.Writer, in *log.InputEvent) {
	if in.Format != "" {
		fmt.Fprintf(w, "  Format: %s\n", in.Format)
	}
	fmt.Fprintf(w, "  Pulses: %d\n", in.Pulses)
	writeText(w, "Text", in.Text, in.Truncated)
}

func formatFrameDetails(w io.Writer, f *log.FrameEvent) {
	if f.Pulses > 0 {
		fmt.Fprintf(w, "  Pulses: %d  Leader: %dus/%dus\n", f.Pulses, f.LeaderMark, f.LeaderSpace)
	}
	if f.Bits != "" {
		fmt.Fprintf(w, "  Bits: %s\n", f.Bits)
	}
	if f.Summary != "" {
		fmt.Fprintf(w, "  %s\n", f.Summary)
	}
}

func formatDeviceDetails(w io.Writer, d *log.DeviceEvent) {
	if d.Decoder == "" {
		fmt.Fprintln(w, "  No decoder matched")
		return
	}
	fmt.Fprintf(w, "  Decoder: %s\n", d.Decoder)
	keys := make([]string, 0, len(d.Fields))
	for k := range d.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "    %s = %s\n", k, d.Fields[k])
	}
}

// ParseStageFlag parses a stage name (case-insensitive).
func ParseStageFlag(s string) (log.Stage, error) {
	stage, ok := log.ParseStage(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid stage: %s (must be input, segment, demod, frame, device, or encode)", s)
	}
	return stage, nil
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "result":
		return log.CategoryResult, nil
	case "miss":
		return log.CategoryMiss, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be result, miss, or error)", s)
	}
}

// ParseProtocolFlag parses a protocol name (case-insensitive).
func ParseProtocolFlag(s string) (ir.Protocol, error) {
	if strings.EqualFold(s, "unknown") {
		return ir.ProtocolUnknown, nil
	}
	return ir.ParseProtocol(s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.toFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
