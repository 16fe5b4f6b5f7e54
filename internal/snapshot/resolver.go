package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is the output directory used before any successful Init and
// restored by Teardown. Relative to the working directory.
const DefaultDir = "pngs/"

// filePrefix marks every file this pipeline emits as a per-cue debug
// snapshot; it also scopes the fallback directory name.
const filePrefix = "srt2dvbsub"

const (
	// maxNoticeLen bounds the diagnostic carried by Notice.
	maxNoticeLen = 256
	// maxNoticePathLen bounds each path embedded in a fallback notice so
	// the combined message stays under maxNoticeLen.
	maxNoticePathLen = 96
)

// Identifier bounds for Filename. Sequence wraps, track and cue clamp.
const (
	seqMod   = 1000
	maxTrack = 7
	maxCue   = 999
)

// Resolver owns the configured output directory for per-cue snapshots and
// synthesizes the filenames written under it.
//
// It is not safe for concurrent use: Init's existence check and create step
// inside EnsureUsable leave a window where two initializers can race. That is
// accepted; callers running Init/Dir/Filename from multiple goroutines must
// add their own locking.
type Resolver struct {
	dir    string
	notice string
}

// NewResolver returns a Resolver pointing at DefaultDir. No filesystem work
// happens until Init.
func NewResolver() *Resolver {
	return &Resolver{dir: DefaultDir}
}

// FallbackDir returns the process-scoped directory adopted when neither the
// requested nor the default directory can be provisioned.
func FallbackDir() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s.%d.pngs", filePrefix, os.Getpid()))
}

// Init resolves and adopts an output directory. custom == "" means "use
// DefaultDir". The requested directory is tried first; if it cannot be
// provisioned, the process-scoped FallbackDir is tried. A successful fallback
// is still a nil return — the narration lives in Notice() — so callers must
// not treat nil as "got exactly what I asked for".
//
// Only total exhaustion (requested and fallback both unusable) returns an
// error. Init may be called any number of times; each call re-resolves from
// scratch and overwrites the previous directory.
func (r *Resolver) Init(custom string) error {
	r.notice = ""

	requested := custom
	if requested == "" {
		requested = DefaultDir
	}

	_, reqErr := EnsureUsable(requested)
	if reqErr == nil {
		r.dir = requested
		return nil
	}

	fallback := FallbackDir()
	if _, fbErr := EnsureUsable(fallback); fbErr != nil {
		if custom == "" {
			return fmt.Errorf("default output dir %s unusable (%v); fallback %s also unusable: %w",
				clipPath(requested), reqErr, clipPath(fallback), fbErr)
		}
		return fmt.Errorf("output dir %s unusable (%v); fallback %s also unusable: %w",
			clipPath(requested), reqErr, clipPath(fallback), fbErr)
	}

	r.dir = fallback
	r.notice = truncate(fmt.Sprintf("output dir %s unusable (%v); falling back to %s",
		clipPath(requested), reqErr, clipPath(fallback)), maxNoticeLen)
	return nil
}

// Dir returns the live configured output directory. Valid before Init: it
// returns DefaultDir.
func (r *Resolver) Dir() string {
	if r.dir == "" {
		return DefaultDir
	}
	return r.dir
}

// Notice returns the diagnostic of the most recent Init, or "" when no
// fallback occurred. At most maxNoticeLen bytes.
func (r *Resolver) Notice() string { return r.notice }

// Teardown resets the Resolver to DefaultDir. Idempotent; nothing on disk is
// touched.
func (r *Resolver) Teardown() {
	r.dir = DefaultDir
	r.notice = ""
}

// Filename synthesizes the snapshot path for one cue. seq wraps modulo 1000,
// track clamps to [0,7] and cue to [0,999]; out-of-range identifiers are
// folded into range rather than rejected. The result is deterministic for a
// given configured directory.
//
// It fails only when the full path would exceed the platform path cap;
// snapshot paths are never silently truncated.
func (r *Resolver) Filename(seq, track, cue int) (string, error) {
	seq %= seqMod
	if seq < 0 {
		seq += seqMod
	}
	track = clampInt(track, 0, maxTrack)
	cue = clampInt(cue, 0, maxCue)

	dir := r.Dir()
	if !os.IsPathSeparator(dir[len(dir)-1]) {
		dir += string(os.PathSeparator)
	}
	full := dir + fmt.Sprintf("%s_%03d_t%02d_c%03d.png", filePrefix, seq, track, cue)
	if len(full) > maxPathLen {
		return "", fmt.Errorf("snapshot path %w: %d bytes", ErrPathTooLong, len(full))
	}
	return full, nil
}

// UsageHint describes the path forms Init accepts.
func UsageHint() string {
	return "output directory may be relative (created under the working directory) or absolute; " +
		"it is created if missing and must be writable"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clipPath shortens a path for embedding in a bounded notice.
func clipPath(p string) string {
	if len(p) <= maxNoticePathLen {
		return p
	}
	return p[:maxNoticePathLen-3] + "..."
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
