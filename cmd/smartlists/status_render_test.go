package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLineWithoutColor(t *testing.T) {
	line := renderStatusLine("Data directory", statusOK, "/tmp/data (read/write ok)", false)
	if !strings.Contains(line, "[OK] /tmp/data (read/write ok)") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no ANSI escapes: %q", line)
	}
}

func TestRenderStatusLineColorsByKind(t *testing.T) {
	line := renderStatusLine("TMDb", statusWarn, "API key not configured", true)
	if !strings.HasPrefix(line, ansiYellow) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected yellow wrapping: %q", line)
	}
}

func TestShouldColorizeRejectsBuffers(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are not terminals")
	}
}
