package progress

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultUpdatesPerSecond keeps the status line readable on slow terminals
// while still feeling live.
const DefaultUpdatesPerSecond = 4

// Printer rewrites a single status line in place, throttled so a tight
// per-cue loop does not flood the terminal. Intermediate updates may be
// dropped; Final always prints and terminates the line.
//
// Not safe for concurrent use.
type Printer struct {
	w       io.Writer
	limiter *rate.Limiter
	lastLen int
}

// NewPrinter writes to w at most updatesPerSecond times (plus the final
// line). updatesPerSecond <= 0 selects DefaultUpdatesPerSecond.
func NewPrinter(w io.Writer, updatesPerSecond float64) *Printer {
	if updatesPerSecond <= 0 {
		updatesPerSecond = DefaultUpdatesPerSecond
	}
	return &Printer{w: w, limiter: rate.NewLimiter(rate.Limit(updatesPerSecond), 1)}
}

// Update rewrites the status line if the rate limit allows it.
func (p *Printer) Update(format string, args ...any) {
	if !p.limiter.Allow() {
		return
	}
	p.print(fmt.Sprintf(format, args...))
}

// Final rewrites the status line unconditionally and ends it with a newline.
func (p *Printer) Final(format string, args ...any) {
	p.print(fmt.Sprintf(format, args...))
	_, _ = fmt.Fprintln(p.w)
	p.lastLen = 0
}

func (p *Printer) print(line string) {
	// Pad over leftovers when the previous line was longer.
	pad := ""
	if d := p.lastLen - len(line); d > 0 {
		pad = strings.Repeat(" ", d)
	}
	_, _ = fmt.Fprintf(p.w, "\r%s%s", line, pad)
	p.lastLen = len(line)
}
