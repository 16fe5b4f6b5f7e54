package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/Desmoss900/srt2dvbsub/internal/fs"
	"github.com/Desmoss900/srt2dvbsub/internal/srt"
)

// Band layout constants, in pixels at any geometry. A cue renders as one
// horizontal foreground band per text line, centered on the background — a
// cheap stand-in for glyph rendering that still makes timing/track mixups
// visible at a glance when flipping through snapshots.
const (
	bandHeight = 24
	bandGap    = 8
	charWidth  = 12
	margin     = 16
)

// Snapshot rasterizes one cue as a debug image.
func Snapshot(c *srt.Cue, p Params) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	lines := c.Lines()
	blockHeight := len(lines)*bandHeight + (len(lines)-1)*bandGap
	// Cue text sits in the lower third, like on a real screen.
	y := p.Height - margin - blockHeight
	if y < margin {
		y = margin
	}

	for _, line := range lines {
		w := len(line) * charWidth
		if limit := p.Width - 2*margin; w > limit {
			w = limit
		}
		if w <= 0 {
			w = charWidth
		}
		x := (p.Width - w) / 2
		band := image.Rect(x, y, x+w, y+bandHeight)
		draw.Draw(img, band.Intersect(img.Bounds()), image.NewUniform(p.Foreground), image.Point{}, draw.Src)
		y += bandHeight + bandGap
	}
	return img
}

// WriteSnapshot rasterizes a cue and writes it as a PNG to path. The path is
// expected to come from the snapshot resolver; this function does not create
// directories.
func WriteSnapshot(path string, c *srt.Cue, p Params) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Snapshot(c, p)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := fs.WriteFile(&buf, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
