package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"imagepuller/internal/runlock"
)

func TestAcquireRejectsSecondHolder(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	target := t.TempDir()

	first, err := runlock.Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	if _, err := runlock.Acquire(lockDir, target); !errors.Is(err, runlock.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	second, err := runlock.Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}

func TestAcquireDistinctTargets(t *testing.T) {
	lockDir := t.TempDir()
	a, err := runlock.Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	defer a.Release()
	b, err := runlock.Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	defer b.Release()

	if a.Path() == b.Path() {
		t.Fatalf("expected distinct lock files, both %q", a.Path())
	}
	if filepath.Dir(a.Path()) != lockDir {
		t.Fatalf("lock file %q outside lock dir", a.Path())
	}
}

func TestPathForIsStable(t *testing.T) {
	if runlock.PathFor("/state/locks", "/photos/") != runlock.PathFor("/state/locks", "/photos") {
		t.Fatal("expected trailing separator not to change lock path")
	}
}

func TestReleaseNil(t *testing.T) {
	var l *runlock.Lock
	if err := l.Release(); err != nil {
		t.Fatalf("expected nil release to succeed, got %v", err)
	}
}
