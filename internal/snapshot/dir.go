package snapshot

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Outcome classifies a single directory-provisioning attempt.
type Outcome int

const (
	Usable Outcome = iota
	NotFound
	NotWritable
	NotADirectory
	CreationFailed
)

func (o Outcome) String() string {
	switch o {
	case Usable:
		return "usable"
	case NotFound:
		return "not found"
	case NotWritable:
		return "not writable"
	case NotADirectory:
		return "not a directory"
	case CreationFailed:
		return "creation failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var (
	ErrEmptyPath   = errors.New("output directory path is empty")
	ErrPathTooLong = errors.New("path too long")
)

// maxPathLen caps any path this package accepts or produces. Matches the
// common PATH_MAX on the platforms the pipeline targets.
const maxPathLen = 4096

// EnsureUsable makes a single directory path usable for writing snapshot
// files: an existing writable directory succeeds with no side effect, a
// missing one is created with a single os.Mkdir (0o755, no recursive parent
// creation). If the create loses a race and the path exists by the time Mkdir
// runs, the path is re-validated and accepted when it turned out to be a
// writable directory.
//
// On failure nothing is deleted and nothing is retried; the returned error
// embeds the underlying OS error text.
func EnsureUsable(path string) (Outcome, error) {
	if path == "" {
		return NotFound, ErrEmptyPath
	}
	if len(path) > maxPathLen {
		return NotFound, fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(path))
	}

	p := strings.TrimRight(path, string(os.PathSeparator))
	if p == "" {
		p = string(os.PathSeparator)
	}

	st, err := os.Stat(p)
	switch {
	case err == nil:
		return validateDir(p, st)
	case !errors.Is(err, os.ErrNotExist):
		// The *os.PathError already names the op and path.
		return CreationFailed, err
	}

	if err := os.Mkdir(p, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			// Another creator won the race between our stat and Mkdir.
			return revalidateAfterRace(p)
		}
		return CreationFailed, err
	}
	return Usable, nil
}

// revalidateAfterRace re-checks a path that appeared between the initial
// stat and Mkdir. A dangling symlink shows the same shape (stat reports the
// path missing while Mkdir reports it existing) and lands here too.
func revalidateAfterRace(p string) (Outcome, error) {
	st, err := os.Stat(p)
	if err != nil {
		return CreationFailed, fmt.Errorf("after create race: %w", err)
	}
	return validateDir(p, st)
}

func validateDir(p string, st os.FileInfo) (Outcome, error) {
	if !st.IsDir() {
		return NotADirectory, fmt.Errorf("not a directory: %s", p)
	}
	if err := probeWritable(p); err != nil {
		return NotWritable, err
	}
	return Usable, nil
}

// probeWritable confirms the current process can create files in dir by
// creating and immediately removing a throwaway file. Checking permission
// bits alone lies on root squash and read-only mounts.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".srt2dvbsub-probe-*.tmp")
	if err != nil {
		return fmt.Errorf("directory is not writable: %s: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("created probe file but failed to remove it (%s): %w", name, err)
	}
	return nil
}
