package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/infrared-remote/ir-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	CaptureID string
	TimeStart string
	TimeEnd   string
	Stage     string
	Category  string
	Protocol  string
}

func (o FilterOptions) build() (log.Filter, error) {
	filter := log.Filter{CaptureID: o.CaptureID}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Stage != "" {
		s, err := ParseStageFlag(o.Stage)
		if err != nil {
			return filter, err
		}
		filter.Stage = &s
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if o.Protocol != "" {
		p, err := ParseProtocolFlag(o.Protocol)
		if err != nil {
			return filter, err
		}
		filter.Protocol = &p
	}
	return filter, nil
}

// RunFilter writes the events of path matching opts to opts.Output and
// reports how many were written to w.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", logger.Count(), opts.Output)
	return nil
}
