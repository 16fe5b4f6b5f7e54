package render

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
)

// Raster bounds accepted for snapshot geometry. SD DVB subtitling regions
// never exceed the 720x576 frame, but HD streams go up to 1920x1080.
const (
	MinDimension = 64
	MaxWidth     = 1920
	MaxHeight    = 1080
)

// DefaultGeometry matches the SD DVB frame the pipeline targets most often.
const DefaultGeometry = "720x576"

const (
	DefaultForeground = "#ffffff"
	DefaultBackground = "#101080"
)

var geometryPattern = regexp.MustCompile(`^(\d{1,4})x(\d{1,4})$`)
var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Params holds validated raster settings for snapshot emission.
type Params struct {
	Width      int
	Height     int
	Foreground color.NRGBA
	Background color.NRGBA
}

// ParseGeometry validates a WxH spec and returns its dimensions.
func ParseGeometry(s string) (int, int, error) {
	m := geometryPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid geometry %q (expected WxH, e.g. %s)", s, DefaultGeometry)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w < MinDimension || w > MaxWidth {
		return 0, 0, fmt.Errorf("geometry width %d out of range [%d,%d]", w, MinDimension, MaxWidth)
	}
	if h < MinDimension || h > MaxHeight {
		return 0, 0, fmt.Errorf("geometry height %d out of range [%d,%d]", h, MinDimension, MaxHeight)
	}
	return w, h, nil
}

// ParseColor validates a #RRGGBB spec and returns it as an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	if !colorPattern.MatchString(s) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (expected #RRGGBB)", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// NewParams validates the three string specs together and builds Params.
func NewParams(geometry, fg, bg string) (Params, error) {
	w, h, err := ParseGeometry(geometry)
	if err != nil {
		return Params{}, err
	}
	fgc, err := ParseColor(fg)
	if err != nil {
		return Params{}, fmt.Errorf("foreground: %w", err)
	}
	bgc, err := ParseColor(bg)
	if err != nil {
		return Params{}, fmt.Errorf("background: %w", err)
	}
	return Params{Width: w, Height: h, Foreground: fgc, Background: bgc}, nil
}
