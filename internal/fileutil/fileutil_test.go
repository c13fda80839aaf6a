package fileutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteStream(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "alice.smith.jpeg")

	content := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	n, err := WriteStream(context.Background(), dst, bytes.NewReader(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(content)) {
		t.Fatalf("expected %d bytes written, got %d", len(content), n)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("content mismatch: got %x, want %x", got, content)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteStreamReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(dst, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteStream(context.Background(), dst, bytes.NewReader([]byte("new")), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestWriteStreamFailureLeavesDestinationUntouched(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "photo.jpeg")
	if err := os.WriteFile(dst, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("connection reset")
	reader := io.MultiReader(bytes.NewReader([]byte("partial")), failingReader{err: boom})
	if _, err := WriteStream(context.Background(), dst, reader, 0o644); !errors.Is(err, boom) {
		t.Fatalf("expected stream error, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "previous" {
		t.Fatalf("destination modified: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteStreamCancelled(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "photo.jpeg")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WriteStream(ctx, dst, bytes.NewReader([]byte("data")), 0o644); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("expected no destination file, stat err=%v", err)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteStreamMissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "photo.jpeg")
	if _, err := WriteStream(context.Background(), dst, bytes.NewReader(nil), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".imagepuller-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
