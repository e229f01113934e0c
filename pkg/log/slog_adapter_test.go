package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

func logJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsFrameEvent(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp:  time.Now(),
		CaptureID:  "capture-123",
		Stage:      StageDemodulate,
		Category:   CategoryResult,
		FrameIndex: intPtr(1),
		Protocol:   protoPtr(ir.ProtocolSIRC),
		Frame:      &FrameEvent{Pulses: 13, LeaderMark: 2394, LeaderSpace: 631, Bits: "101010010000"},
	})

	if entry["msg"] != "trace" {
		t.Errorf("msg: got %v, want trace", entry["msg"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v, want DEBUG", entry["level"])
	}
	if entry["capture_id"] != "capture-123" {
		t.Errorf("capture_id: got %v", entry["capture_id"])
	}
	if entry["stage"] != "DEMOD" {
		t.Errorf("stage: got %v, want DEMOD", entry["stage"])
	}
	if entry["protocol"] != "SIRC" {
		t.Errorf("protocol: got %v, want SIRC", entry["protocol"])
	}
	if entry["frame"] != float64(1) {
		t.Errorf("frame: got %v, want 1", entry["frame"])
	}
	if entry["bits"] != float64(12) {
		t.Errorf("bits: got %v, want 12", entry["bits"])
	}
}

func TestSlogAdapterLogsDeviceEvent(t *testing.T) {
	entry := logJSON(t, Event{
		CaptureID: "c",
		Stage:     StageDevice,
		Device: &DeviceEvent{
			Decoder:      "sony",
			Manufacturer: "sony",
			Fields:       map[string]string{"command": "Power", "address": "TV"},
		},
	})

	if entry["decoder"] != "sony" {
		t.Errorf("decoder: got %v", entry["decoder"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields: got %T", entry["fields"])
	}
	if fields["command"] != "Power" || fields["address"] != "TV" {
		t.Errorf("fields: got %v", fields)
	}
}

func TestSlogAdapterLogsErrorEvent(t *testing.T) {
	entry := logJSON(t, Event{
		CaptureID: "c",
		Stage:     StageFrame,
		Category:  CategoryError,
		Error:     &ErrorEventData{Stage: StageFrame, Message: "unknown protocol", Context: "frame 2"},
	})

	if entry["category"] != "ERROR" {
		t.Errorf("category: got %v", entry["category"])
	}
	if entry["error_msg"] != "unknown protocol" || entry["error_context"] != "frame 2" {
		t.Errorf("error attrs: got %v / %v", entry["error_msg"], entry["error_context"])
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{CaptureID: "c"})
	if buf.Len() != 0 {
		t.Errorf("expected no output at Info level, got %q", buf.String())
	}
}
