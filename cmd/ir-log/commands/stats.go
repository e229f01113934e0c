package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByStage    map[log.Stage]int
	EventsByCategory map[log.Category]int
	FramesByProtocol map[ir.Protocol]int
	Decoders         map[string]int
	Captures         map[string]*CaptureStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// CaptureStats holds statistics for a single capture.
type CaptureStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Source    string
	Frames    int
	Codes     int
	Matched   bool
	Failed    bool
}

// Collect reads every event of r into a Stats.
func Collect(r *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByStage:    make(map[log.Stage]int),
		EventsByCategory: make(map[log.Category]int),
		FramesByProtocol: make(map[ir.Protocol]int),
		Decoders:         make(map[string]int),
		Captures:         make(map[string]*CaptureStats),
	}

	for {
		event, err := r.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByStage[event.Stage]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		c, ok := stats.Captures[event.CaptureID]
		if !ok {
			c = &CaptureStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Captures[event.CaptureID] = c
		}
		c.Events++
		if event.Timestamp.After(c.LastSeen) {
			c.LastSeen = event.Timestamp
		}
		if c.Source == "" {
			c.Source = event.Source
		}

		switch {
		case event.Stage == log.StageDemodulate && event.Protocol != nil:
			stats.FramesByProtocol[*event.Protocol]++
			c.Frames++
		case event.Device != nil && event.Device.Decoder != "":
			stats.Decoders[event.Device.Decoder]++
			c.Codes++
			c.Matched = true
		}

		if event.Error != nil {
			stats.Errors++
			c.Failed = true
		}
	}
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== IR Decode Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}

	fmt.Fprintf(w, "Total Events: %d\n\n", stats.TotalEvents)

	fmt.Fprintln(w, "Events by Stage:")
	for s := log.StageInput; s <= log.StageEncode; s++ {
		if n := stats.EventsByStage[s]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", s.String()+":", n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, c := range []log.Category{log.CategoryResult, log.CategoryMiss, log.CategoryError} {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", n)
		}
	}
	fmt.Fprintln(w)

	if len(stats.FramesByProtocol) > 0 {
		fmt.Fprintln(w, "Frames by Protocol:")
		for _, p := range []ir.Protocol{ir.ProtocolAEHA, ir.ProtocolNEC, ir.ProtocolNECRepeat, ir.ProtocolSIRC, ir.ProtocolUnknown} {
			if n := stats.FramesByProtocol[p]; n > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", p.String()+":", n)
			}
		}
		fmt.Fprintln(w)
	}

	if len(stats.Decoders) > 0 {
		fmt.Fprintln(w, "Codes by Decoder:")
		names := make([]string, 0, len(stats.Decoders))
		for name := range stats.Decoders {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-16s %d\n", name+":", stats.Decoders[name])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Captures: %d\n", len(stats.Captures))
	ids := make([]string, 0, len(stats.Captures))
	for id := range stats.Captures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Captures[ids[i]].FirstSeen.Before(stats.Captures[ids[j]].FirstSeen)
	})
	for _, id := range ids {
		c := stats.Captures[id]
		status := "unmatched"
		switch {
		case c.Failed:
			status = "failed"
		case c.Matched:
			status = "matched"
		}
		fmt.Fprintf(w, "  [%s] %d events, %d frames, %d codes, %s\n", shortenID(id), c.Events, c.Frames, c.Codes, status)
		if c.Source != "" {
			fmt.Fprintf(w, "           Source: %s\n", c.Source)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintf(w, "\nErrors: %d\n", stats.Errors)
	}
}
