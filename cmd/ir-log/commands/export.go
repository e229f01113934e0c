package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/infrared-remote/ir-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "capture_id", "stage", "category", "frame", "protocol", "source", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return cw.Error()
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var frame, protocol string
		if event.FrameIndex != nil {
			frame = strconv.Itoa(*event.FrameIndex)
		}
		if event.Protocol != nil {
			protocol = event.Protocol.String()
		}
		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.CaptureID,
			event.Stage.String(),
			event.Category.String(),
			frame,
			protocol,
			event.Source,
			detail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}

// detail summarises the payload of an event in one line.
func detail(e log.Event) string {
	switch {
	case e.Input != nil:
		return fmt.Sprintf("%s %d pulses", e.Input.Format, e.Input.Pulses)
	case e.Segment != nil:
		return fmt.Sprintf("%d frames", len(e.Segment.FrameSizes))
	case e.Frame != nil && e.Frame.Summary != "":
		return e.Frame.Summary
	case e.Frame != nil:
		return e.Frame.Bits
	case e.Device != nil && e.Device.Decoder == "":
		return "no match"
	case e.Device != nil:
		return e.Device.Decoder + " " + e.Device.Manufacturer
	case e.Encode != nil:
		return fmt.Sprintf("%d frames %d pulses", e.Encode.Frames, e.Encode.Pulses)
	case e.Error != nil:
		return e.Error.Message
	}
	return ""
}
