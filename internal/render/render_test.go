package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Desmoss900/srt2dvbsub/internal/srt"
)

func testParams(t *testing.T) Params {
	t.Helper()
	p, err := NewParams(DefaultGeometry, DefaultForeground, DefaultBackground)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	return p
}

func TestSnapshot_BackgroundAndBands(t *testing.T) {
	p := testParams(t)
	c := &srt.Cue{Index: 1, FromTime: time.Second, ToTime: 2 * time.Second, Text: "Hello"}
	img := Snapshot(c, p)

	if got := img.Bounds().Dx(); got != p.Width {
		t.Fatalf("expected width %d, got %d", p.Width, got)
	}
	if got := img.Bounds().Dy(); got != p.Height {
		t.Fatalf("expected height %d, got %d", p.Height, got)
	}
	// Top-left corner is always background.
	if img.NRGBAAt(0, 0) != p.Background {
		t.Fatalf("expected background at corner, got %+v", img.NRGBAAt(0, 0))
	}
	// The lower third holds the cue band: scan for at least one foreground pixel.
	found := false
	for y := 2 * p.Height / 3; y < p.Height && !found; y++ {
		for x := 0; x < p.Width; x++ {
			if img.NRGBAAt(x, y) == p.Foreground {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("expected a foreground band in the lower third")
	}
}

func TestSnapshot_ManyLinesStayInBounds(t *testing.T) {
	p := testParams(t)
	text := "a"
	for i := 0; i < 40; i++ {
		text += "\na"
	}
	c := &srt.Cue{Index: 1, Text: text}
	// Must not panic or draw outside bounds even for absurd cue text.
	img := Snapshot(c, p)
	if img.Bounds().Dx() != p.Width || img.Bounds().Dy() != p.Height {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestWriteSnapshot_ProducesDecodablePNG(t *testing.T) {
	p := testParams(t)
	c := &srt.Cue{Index: 3, Text: "Two\nlines"}
	path := filepath.Join(t.TempDir(), "cue.png")

	if err := WriteSnapshot(path, c, p); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != p.Width {
		t.Fatalf("unexpected decoded width %d", img.Bounds().Dx())
	}
}

func TestWriteSnapshot_MissingDirFails(t *testing.T) {
	p := testParams(t)
	c := &srt.Cue{Index: 1, Text: "x"}
	path := filepath.Join(t.TempDir(), "missing", "cue.png")
	if err := WriteSnapshot(path, c, p); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
