package irremote

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// ErrInvalidConfig is returned by Validate and the constructors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config configures a Decoder or Encoder.
type Config struct {
	// Registry holds the device decoders, tried in order.
	// If nil, device.DefaultRegistry() is used.
	Registry *device.Registry

	// Logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// TraceLogger receives one event per pipeline stage and frame.
	// If nil, tracing is disabled.
	TraceLogger log.Logger

	// Workers bounds the concurrency of DecodeBatch.
	// Zero means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a config with the built-in decoders and one batch
// worker per CPU.
func DefaultConfig() Config {
	return Config{
		Registry: device.DefaultRegistry(),
		Workers:  runtime.NumCPU(),
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = device.DefaultRegistry()
	}
	if c.TraceLogger == nil {
		c.TraceLogger = log.NoopLogger{}
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}
