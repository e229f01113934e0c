package irtext

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a textual capture encoding.
type Format uint8

const (
	// FormatAuto selects the format from the input.
	FormatAuto Format = iota
	FormatHex
	FormatJSON
	FormatPigpio
)

var formatNames = map[Format]string{
	FormatAuto:   "auto",
	FormatHex:    "hex",
	FormatJSON:   "json",
	FormatPigpio: "pigpio",
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat parses a format name as accepted by the -format flags.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Errors returned by the parsers.
var (
	ErrEmptyInput         = errors.New("empty input")
	ErrUnrecognizedFormat = errors.New("unrecognized capture format")
	ErrUnknownFormat      = errors.New("unknown format name")
)

// SyntaxError reports malformed input.
type SyntaxError struct {
	Format Format
	Offset int // byte offset into the input, -1 if not applicable
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Format, e.Msg)
	}
	return fmt.Sprintf("%s: offset %d: %s", e.Format, e.Offset, e.Msg)
}

// Detect guesses the format of s from its first non-space character.
func Detect(s string) (Format, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return FormatAuto, ErrEmptyInput
	}
	switch c := t[0]; {
	case c == '[':
		return FormatJSON, nil
	case c == '{':
		return FormatPigpio, nil
	case isHexDigit(c):
		return FormatHex, nil
	}
	return FormatAuto, ErrUnrecognizedFormat
}
