package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false)

	l.Errorf("undefined opcode 0x%02X", 0xD3)
	l.Debugf("hidden")

	out := buf.String()
	if !strings.Contains(out, "undefined opcode 0xD3") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "log_test.go") {
		t.Errorf("expected caller location in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug line to be filtered, got %q", out)
	}

	buf.Reset()
	NewWithWriter(&buf, true).Debugf("trace")
	if !strings.Contains(buf.String(), "trace") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}
