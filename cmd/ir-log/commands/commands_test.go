package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/log"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func intPtr(i int) *int                   { return &i }
func protoPtr(p ir.Protocol) *ir.Protocol { return &p }

// writeTrace writes the events of a two-capture decode session to a temp file.
func writeTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decode.irlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	events := []log.Event{
		{
			Timestamp: baseTime,
			CaptureID: "aaaaaaaa-1111",
			Stage:     log.StageInput,
			Category:  log.CategoryResult,
			Source:    "toshiba.hex",
			Input:     &log.InputEvent{Format: "hex", Pulses: 34},
		},
		{
			Timestamp: baseTime.Add(time.Millisecond),
			CaptureID: "aaaaaaaa-1111",
			Stage:     log.StageSegment,
			Category:  log.CategoryResult,
			Segment:   &log.SegmentEvent{FrameSizes: []int{34}},
		},
		{
			Timestamp:  baseTime.Add(2 * time.Millisecond),
			CaptureID:  "aaaaaaaa-1111",
			Stage:      log.StageDemodulate,
			Category:   log.CategoryResult,
			FrameIndex: intPtr(0),
			Protocol:   protoPtr(ir.ProtocolNEC),
			Frame:      &log.FrameEvent{Pulses: 34, LeaderMark: 8992, LeaderSpace: 4496, Bits: "0000001011111101"},
		},
		{
			Timestamp: baseTime.Add(3 * time.Millisecond),
			CaptureID: "aaaaaaaa-1111",
			Stage:     log.StageDevice,
			Category:  log.CategoryResult,
			Device: &log.DeviceEvent{
				Decoder:      "toshiba-tv",
				Manufacturer: "toshiba",
				Fields:       map[string]string{"command": "Power", "address": "tv"},
			},
		},
		{
			Timestamp: baseTime.Add(time.Second),
			CaptureID: "bbbbbbbb-2222",
			Stage:     log.StageInput,
			Category:  log.CategoryResult,
			Source:    "partial.hex",
			Input:     &log.InputEvent{Format: "hex", Pulses: 20},
		},
		{
			Timestamp:  baseTime.Add(time.Second + time.Millisecond),
			CaptureID:  "bbbbbbbb-2222",
			Stage:      log.StageFrame,
			Category:   log.CategoryError,
			FrameIndex: intPtr(0),
			Protocol:   protoPtr(ir.ProtocolNEC),
			Error:      &log.ErrorEventData{Stage: log.StageFrame, Message: "insufficient input data (expected data1 (NEC))"},
		},
		{
			Timestamp: baseTime.Add(2 * time.Second),
			CaptureID: "cccccccc-3333",
			Stage:     log.StageDevice,
			Category:  log.CategoryMiss,
			Device:    &log.DeviceEvent{},
		},
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestRunViewAll(t *testing.T) {
	path := writeTrace(t)
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"[cap:aaaaaaaa]",
		"INPUT",
		"Source: toshiba.hex",
		"Frames: 1 [34]",
		"frame 0 NEC",
		"Leader: 8992us/4496us",
		"Decoder: toshiba-tv",
		"command = Power",
		"Message: insufficient input data",
		"No decoder matched",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := writeTrace(t)

	stage := log.StageDevice
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Stage: &stage}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "INPUT") {
		t.Errorf("stage filter let INPUT events through:\n%s", out)
	}
	if got := strings.Count(out, "DEVICE"); got != 2 {
		t.Errorf("DEVICE events: got %d, want 2", got)
	}

	cat := log.CategoryError
	buf.Reset()
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if got := strings.Count(buf.String(), "[cap:"); got != 1 {
		t.Errorf("error events: got %d, want 1", got)
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{CaptureID: "aaaaaaaa-1111"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if got := strings.Count(buf.String(), "[cap:aaaaaaaa]"); got != 4 {
		t.Errorf("capture events: got %d, want 4", got)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	err := RunView(filepath.Join(t.TempDir(), "missing.irlog"), ViewFilter{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFlags(t *testing.T) {
	s, err := ParseStageFlag("demod")
	if err != nil || s != log.StageDemodulate {
		t.Errorf("ParseStageFlag(demod) = %v, %v", s, err)
	}
	if _, err := ParseStageFlag("wire"); err == nil {
		t.Error("ParseStageFlag(wire) should fail")
	}

	c, err := ParseCategoryFlag("MISS")
	if err != nil || c != log.CategoryMiss {
		t.Errorf("ParseCategoryFlag(MISS) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("state"); err == nil {
		t.Error("ParseCategoryFlag(state) should fail")
	}

	p, err := ParseProtocolFlag("Unknown")
	if err != nil || p != ir.ProtocolUnknown {
		t.Errorf("ParseProtocolFlag(Unknown) = %v, %v", p, err)
	}
	p, err = ParseProtocolFlag("sony")
	if err != nil || p != ir.ProtocolSIRC {
		t.Errorf("ParseProtocolFlag(sony) = %v, %v", p, err)
	}
	if _, err := ParseProtocolFlag("rc5"); err == nil {
		t.Error("ParseProtocolFlag(rc5) should fail")
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := writeTrace(t)
	out := filepath.Join(t.TempDir(), "trace.jsonl")
	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines: got %d, want 7", len(lines))
	}
	var first log.Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.CaptureID != "aaaaaaaa-1111" || first.Input == nil || first.Input.Pulses != 34 {
		t.Errorf("first event: %+v", first)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeTrace(t)
	out := filepath.Join(t.TempDir(), "trace.csv")
	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines: got %d, want 8 (header + 7)", len(lines))
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("header: %q", lines[0])
	}
	if !strings.Contains(lines[3], "DEMOD,RESULT,0,NEC") {
		t.Errorf("demod row: %q", lines[3])
	}
	if !strings.Contains(lines[7], "no match") {
		t.Errorf("miss row: %q", lines[7])
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeTrace(t)
	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("got %v, want unknown format error", err)
	}
}

func TestRunFilter(t *testing.T) {
	path := writeTrace(t)
	out := filepath.Join(t.TempDir(), "nec.irlog")

	var msg bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: out, Protocol: "nec"}, &msg)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(msg.String(), "Filtered 2 events") {
		t.Errorf("message: %q", msg.String())
	}

	r, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	for _, e := range events {
		if e.Protocol == nil || *e.Protocol != ir.ProtocolNEC {
			t.Errorf("unexpected event %+v", e)
		}
	}
}

func TestRunFilterTimeRange(t *testing.T) {
	path := writeTrace(t)
	out := filepath.Join(t.TempDir(), "late.irlog")
	opts := FilterOptions{
		Output:    out,
		TimeStart: baseTime.Add(500 * time.Millisecond).Format(time.RFC3339Nano),
	}
	var msg bytes.Buffer
	if err := RunFilter(path, opts, &msg); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(msg.String(), "Filtered 3 events") {
		t.Errorf("message: %q", msg.String())
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := writeTrace(t)
	out := filepath.Join(t.TempDir(), "x.irlog")
	for _, opts := range []FilterOptions{
		{Output: out, Stage: "wire"},
		{Output: out, Category: "state"},
		{Output: out, Protocol: "rc5"},
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "tomorrow"},
	} {
		if err := RunFilter(path, opts, &bytes.Buffer{}); err == nil {
			t.Errorf("RunFilter(%+v) should fail", opts)
		}
	}
}

func TestCollectStats(t *testing.T) {
	path := writeTrace(t)
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	stats, err := Collect(r)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if stats.TotalEvents != 7 {
		t.Errorf("TotalEvents: got %d, want 7", stats.TotalEvents)
	}
	if got := stats.EventsByStage[log.StageDevice]; got != 2 {
		t.Errorf("device events: got %d, want 2", got)
	}
	if got := stats.EventsByCategory[log.CategoryMiss]; got != 1 {
		t.Errorf("miss events: got %d, want 1", got)
	}
	if got := stats.FramesByProtocol[ir.ProtocolNEC]; got != 1 {
		t.Errorf("NEC frames: got %d, want 1", got)
	}
	if got := stats.Decoders["toshiba-tv"]; got != 1 {
		t.Errorf("toshiba-tv codes: got %d, want 1", got)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors: got %d, want 1", stats.Errors)
	}
	if len(stats.Captures) != 3 {
		t.Fatalf("Captures: got %d, want 3", len(stats.Captures))
	}
	if c := stats.Captures["aaaaaaaa-1111"]; !c.Matched || c.Source != "toshiba.hex" || c.Frames != 1 {
		t.Errorf("capture a: %+v", c)
	}
	if c := stats.Captures["bbbbbbbb-2222"]; !c.Failed {
		t.Errorf("capture b should be failed: %+v", c)
	}
	if got := stats.TimeRange.End.Sub(stats.TimeRange.Start); got != 2*time.Second {
		t.Errorf("time range: got %v, want 2s", got)
	}
}

func TestRunStats(t *testing.T) {
	path := writeTrace(t)
	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Total Events: 7",
		"DEVICE:",
		"Frames by Protocol:",
		"toshiba-tv:",
		"Captures: 3",
		"matched",
		"failed",
		"unmatched",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
