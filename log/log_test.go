package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func resetSink() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	SetLevel(Debug)
	defer resetSink()

	logger := New("logtest")
	logger.Infof("rendered %d frames", 42)

	out := buf.String()
	if !strings.Contains(out, "rendered 42 frames") {
		t.Errorf("Expected message in output, got %q", out)
	}
	if !strings.Contains(out, "[logtest]") {
		t.Errorf("Expected module name in output, got %q", out)
	}
}

func TestSetLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	SetLevel(Error)
	defer resetSink()

	logger := New("logtest-filter")
	logger.Info("below threshold")
	if strings.Contains(buf.String(), "below threshold") {
		t.Errorf("Info message must be filtered at Error level, got %q", buf.String())
	}

	logger.Error("above threshold")
	if !strings.Contains(buf.String(), "above threshold") {
		t.Errorf("Error message must pass at Error level, got %q", buf.String())
	}
}
