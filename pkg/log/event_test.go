package log

import (
	"strings"
	"testing"
)

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageInput, "INPUT"},
		{StageSegment, "SEGMENT"},
		{StageDemodulate, "DEMOD"},
		{StageFrame, "FRAME"},
		{StageDevice, "DEVICE"},
		{StageEncode, "ENCODE"},
		{Stage(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.stage.String()
		if got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
		if tt.want == "UNKNOWN" {
			continue
		}
		parsed, ok := ParseStage(got)
		if !ok || parsed != tt.stage {
			t.Errorf("ParseStage(%q) = %d, %v", got, parsed, ok)
		}
	}
	if _, ok := ParseStage("BOGUS"); ok {
		t.Error("ParseStage(BOGUS) should fail")
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryResult, "RESULT"},
		{CategoryMiss, "MISS"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	short, truncated := Truncate("5601AA00")
	if short != "5601AA00" || truncated {
		t.Errorf("Truncate(short) = %q, %v", short, truncated)
	}

	long := strings.Repeat("A", MaxTextSize+10)
	got, truncated := Truncate(long)
	if len(got) != MaxTextSize || !truncated {
		t.Errorf("Truncate(long) = %d bytes, %v; want %d, true", len(got), truncated, MaxTextSize)
	}
}
