package irtext

import (
	"errors"
	"reflect"
	"testing"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ir.Pulse
	}{
		{
			name:  "hex",
			input: "5601AA0017001500",
			want:  []ir.Pulse{{Mark: 9000, Space: 4473}, {Mark: 605, Space: 552}},
		},
		{
			name:  "hex with whitespace",
			input: "  5601AA00 17001500\n",
			want:  []ir.Pulse{{Mark: 9000, Space: 4473}, {Mark: 605, Space: 552}},
		},
		{
			name:  "hex lower case",
			input: "ce038400",
			want:  []ir.Pulse{{Mark: 25631, Space: 3473}},
		},
		{
			name:  "json",
			input: "[9000, 4473, 605, 552]",
			want:  []ir.Pulse{{Mark: 9000, Space: 4473}, {Mark: 605, Space: 552}},
		},
		{
			name:  "json trailing comma",
			input: "[ 9000, 4473 , 605, 552, ]",
			want:  []ir.Pulse{{Mark: 9000, Space: 4473}, {Mark: 605, Space: 552}},
		},
		{
			name:  "json odd count",
			input: "[417,448,418]",
			want:  []ir.Pulse{{Mark: 417, Space: 448}, {Mark: 418, Space: TrailingSpace}},
		},
		{
			name:  "pigpio",
			input: `{"name":[417,448,418,]}`,
			want:  []ir.Pulse{{Mark: 417, Space: 448}, {Mark: 418, Space: 35000}},
		},
		{
			name:  "pigpio multiline",
			input: "{\n  \"power\": [\n    9000, 4473\n  ]\n}\n",
			want:  []ir.Pulse{{Mark: 9000, Space: 4473}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"empty", "", ErrEmptyInput},
		{"blank", " \n\t", ErrEmptyInput},
		{"empty array", "[]", ErrEmptyInput},
		{"unrecognized", "hello", ErrUnrecognizedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); !errors.Is(err, tt.target) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.target)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		offset int
	}{
		{"hex incomplete", "5601AA00170015", FormatHex, 13},
		{"hex bad digit", "5601AA0017001G00", FormatHex, 13},
		{"json negative", "[9000, -1]", FormatJSON, -1},
		{"json unterminated", "[9000, 4473", FormatJSON, -1},
		{"pigpio two keys", `{"a":[1,2],"b":[3,4]}`, FormatPigpio, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.input, err)
			}
			if se.Format != tt.format || se.Offset != tt.offset {
				t.Errorf("SyntaxError = {%s %d}, want {%s %d}", se.Format, se.Offset, tt.format, tt.offset)
			}
		})
	}
}

func TestParseAs(t *testing.T) {
	// Digits only, but parsed as a JSON array when asked to.
	got, err := ParseAs(FormatJSON, "[10, 20]")
	if err != nil {
		t.Fatalf("ParseAs failed: %v", err)
	}
	if len(got) != 1 || got[0] != (ir.Pulse{Mark: 10, Space: 20}) {
		t.Errorf("ParseAs() = %v", got)
	}
	if _, err := ParseAs(FormatHex, "[10, 20]"); err == nil {
		t.Error("ParseAs(FormatHex, json) should fail")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"5601AA00", FormatHex},
		{"ce038400", FormatHex},
		{" [1,2]", FormatJSON},
		{`{"x":[1,2]}`, FormatPigpio},
	}
	for _, tt := range tests {
		got, err := Detect(tt.input)
		if err != nil {
			t.Errorf("Detect(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatAuto, FormatHex, FormatJSON, FormatPigpio} {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want ErrUnknownFormat", err)
	}
}
