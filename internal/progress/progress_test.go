package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestUpdate_ThrottlesBurst(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 1) // 1/sec, burst 1

	p.Update("cue %d", 1)
	first := buf.Len()
	if first == 0 {
		t.Fatalf("expected first update to print")
	}
	// Immediately following updates are inside the same token window.
	p.Update("cue %d", 2)
	p.Update("cue %d", 3)
	if buf.Len() != first {
		t.Fatalf("expected throttled updates to be dropped, buffer grew from %d to %d", first, buf.Len())
	}
}

func TestFinal_AlwaysPrintsWithNewline(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 1)
	p.Update("working")
	p.Final("done: %d cues", 7)

	out := buf.String()
	if !strings.Contains(out, "done: 7 cues") {
		t.Fatalf("expected final line, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newline, got %q", out)
	}
}

func TestFinal_PadsShorterLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 1000)
	p.Update("a long status line")
	p.Final("ok")

	out := buf.String()
	// The final rewrite must blank the tail of the longer previous line.
	if !strings.Contains(out, "\rok ") {
		t.Fatalf("expected padded rewrite, got %q", out)
	}
}
