package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolver_DefaultBeforeInit(t *testing.T) {
	r := NewResolver()
	if got := r.Dir(); got != DefaultDir {
		t.Fatalf("expected %q before Init, got %q", DefaultDir, got)
	}
}

func TestInit_ValidCustomPath_AdoptedWithoutNotice(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver()
	if err := r.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := r.Dir(); got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
	if n := r.Notice(); n != "" {
		t.Fatalf("expected empty notice, got %q", n)
	}
}

func TestInit_EmptyCustom_ProvisionsDefault(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	r := NewResolver()
	if err := r.Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := r.Dir(); got != DefaultDir {
		t.Fatalf("expected %q, got %q", DefaultDir, got)
	}
	st, err := os.Stat("pngs")
	if err != nil {
		t.Fatalf("expected default dir to exist: %v", err)
	}
	if !st.IsDir() {
		t.Fatalf("expected default dir to be a directory")
	}
}

func TestInit_UncreatablePath_FallsBackWithNotice(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; directory permissions won't prevent writes")
	}
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not POSIX on Windows")
	}

	parent := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(parent, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	requested := filepath.Join(parent, "pngs")

	r := NewResolver()
	if err := r.Init(requested); err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}

	want := FallbackDir()
	if got := r.Dir(); got != want {
		t.Fatalf("expected fallback dir %q, got %q", want, got)
	}
	if !strings.Contains(r.Dir(), fmt.Sprintf(".%d.", os.Getpid())) {
		t.Fatalf("expected pid in fallback dir, got %q", r.Dir())
	}

	n := r.Notice()
	if n == "" {
		t.Fatalf("expected fallback notice")
	}
	if !strings.Contains(n, requested) || !strings.Contains(n, want) {
		t.Fatalf("expected notice to name both paths, got %q", n)
	}
	if len(n) > maxNoticeLen {
		t.Fatalf("notice exceeds %d bytes: %d", maxNoticeLen, len(n))
	}
}

func TestInit_NoticePathsClipped(t *testing.T) {
	long := filepath.Join(t.TempDir(), strings.Repeat("x", 2*maxNoticePathLen), "pngs")
	// Deep path with a missing parent: stage 1 fails, fallback succeeds.
	r := NewResolver()
	if err := r.Init(long); err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}
	n := r.Notice()
	if strings.Contains(n, long) {
		t.Fatalf("expected requested path to be clipped in notice")
	}
	if len(n) > maxNoticeLen {
		t.Fatalf("notice exceeds %d bytes: %d", maxNoticeLen, len(n))
	}
}

func TestInit_Idempotent(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver()
	if err := r.Init(dir); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := r.Init(dir); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if got := r.Dir(); got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
	if n := r.Notice(); n != "" {
		t.Fatalf("expected empty notice after repeat Init, got %q", n)
	}
}

func TestFilename_DeterministicAndFixedWidth(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver()
	if err := r.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	a, err := r.Filename(42, 3, 7)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	b, err := r.Filename(42, 3, 7)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic result, got %q vs %q", a, b)
	}
	if base := filepath.Base(a); base != "srt2dvbsub_042_t03_c007.png" {
		t.Fatalf("unexpected name %q", base)
	}
	if filepath.Dir(a) != dir {
		t.Fatalf("expected path inside %q, got %q", dir, a)
	}
}

func TestFilename_ClampEquivalence(t *testing.T) {
	r := NewResolver()
	a, err := r.Filename(1000, 9, -5)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	b, err := r.Filename(0, 7, 0)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	if a != b {
		t.Fatalf("expected clamp equivalence, got %q vs %q", a, b)
	}
}

func TestFilename_NegativeSequenceWraps(t *testing.T) {
	r := NewResolver()
	a, err := r.Filename(-1, 0, 0)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	b, err := r.Filename(999, 0, 0)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	if a != b {
		t.Fatalf("expected -1 to wrap to 999, got %q vs %q", a, b)
	}
}

func TestFilename_SeparatorAppendedOnlyWhenMissing(t *testing.T) {
	dir := t.TempDir()
	withSep := &Resolver{dir: dir + string(os.PathSeparator)}
	withoutSep := &Resolver{dir: dir}

	a, err := withSep.Filename(1, 1, 1)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	b, err := withoutSep.Filename(1, 1, 1)
	if err != nil {
		t.Fatalf("Filename: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical paths, got %q vs %q", a, b)
	}
	if strings.Contains(a, string(os.PathSeparator)+string(os.PathSeparator)) {
		t.Fatalf("expected no doubled separator in %q", a)
	}
}

func TestFilename_PathTooLong(t *testing.T) {
	r := &Resolver{dir: strings.Repeat("a", maxPathLen)}
	if _, err := r.Filename(0, 0, 0); !errors.Is(err, ErrPathTooLong) {
		t.Fatalf("expected ErrPathTooLong, got %v", err)
	}
}

func TestTeardown_RestoresDefault(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver()
	if err := r.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r.Teardown()
	if got := r.Dir(); got != DefaultDir {
		t.Fatalf("expected %q after Teardown, got %q", DefaultDir, got)
	}
	if n := r.Notice(); n != "" {
		t.Fatalf("expected empty notice after Teardown, got %q", n)
	}
	// Teardown twice is fine.
	r.Teardown()
	if got := r.Dir(); got != DefaultDir {
		t.Fatalf("expected %q after second Teardown, got %q", DefaultDir, got)
	}
}

func TestFallbackDir_ScopedToProcess(t *testing.T) {
	d := FallbackDir()
	if !strings.Contains(d, fmt.Sprintf("srt2dvbsub.%d.pngs", os.Getpid())) {
		t.Fatalf("expected process-scoped name, got %q", d)
	}
	if filepath.Dir(d) != filepath.Clean(os.TempDir()) {
		t.Fatalf("expected fallback under temp dir, got %q", d)
	}
}

func TestUsageHint_NonEmpty(t *testing.T) {
	if UsageHint() == "" {
		t.Fatalf("expected a usage hint")
	}
}
