package cliargs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"imagepuller/internal/cliargs"
)

func TestParseHelpTokens(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"help"}, {"--help"}, {"-h"}, {"-h", "/does/not/exist"}} {
		res, err := cliargs.Parse(args, nil)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", args, err)
		}
		if !res.Help {
			t.Fatalf("Parse(%q) expected help request", args)
		}
		if res.People != nil || res.TargetDir != "" {
			t.Fatalf("Parse(%q) expected empty request, got %#v", args, res)
		}
	}
}

func TestParseWhitespaceSourceIsNotHelp(t *testing.T) {
	target := t.TempDir()
	if cliargs.IsHelp([]string{"  "}) {
		t.Fatal("whitespace-only source treated as help")
	}
	res, err := cliargs.Parse([]string{" \t ", target}, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Help || len(res.People) != 0 || res.TargetDir != target {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestParseInlineList(t *testing.T) {
	target := t.TempDir()
	res, err := cliargs.Parse([]string{"Alice Smith, Bob Jones", target}, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice Smith", "Bob Jones"}, res.People); diff != "" {
		t.Fatalf("people mismatch (-want +got):\n%s", diff)
	}
	if res.TargetDir != target {
		t.Fatalf("unexpected target: %q", res.TargetDir)
	}
	if res.Config.Size() != "96" {
		t.Fatalf("expected default size 96, got %q", res.Config.Size())
	}
}

func TestParseFileSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "people.txt")
	if err := os.WriteFile(source, []byte("a,b\n\tc"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	res, err := cliargs.Parse([]string{source, dir}, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, res.People); diff != "" {
		t.Fatalf("people mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSourceDirectoryRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := cliargs.Parse([]string{dir, dir}, nil)
	if !errors.Is(err, cliargs.ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestParseMissingSourceFileRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := cliargs.Parse([]string{filepath.Join(dir, "missing.txt"), dir}, nil)
	if !errors.Is(err, cliargs.ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestParseTargetMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.jpg")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := cliargs.Parse([]string{"alice", file}, nil)
	if !errors.Is(err, cliargs.ErrTarget) {
		t.Fatalf("expected ErrTarget, got %v", err)
	}

	_, err = cliargs.Parse([]string{"alice", filepath.Join(dir, "missing")}, nil)
	if !errors.Is(err, cliargs.ErrTarget) {
		t.Fatalf("expected ErrTarget for missing path, got %v", err)
	}
}

func TestParseTargetResolvedToAbsolute(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("out", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	res, err := cliargs.Parse([]string{"alice", "out"}, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !filepath.IsAbs(res.TargetDir) || filepath.Base(res.TargetDir) != "out" {
		t.Fatalf("expected absolute target ending in out, got %q", res.TargetDir)
	}
}

func TestParseMissingTargetLeftEmpty(t *testing.T) {
	res, err := cliargs.Parse([]string{"alice"}, nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.TargetDir != "" {
		t.Fatalf("expected empty target, got %q", res.TargetDir)
	}
	if diff := cmp.Diff([]string{"alice"}, res.People); diff != "" {
		t.Fatalf("people mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptionsOverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := map[string]string{"size": "48", "concurrency": "2"}
	res, err := cliargs.Parse([]string{"alice", dir, "--size=64", "--size=120", "--note=a=b"}, defaults)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Config.Size() != "120" {
		t.Fatalf("expected later option to win, got %q", res.Config.Size())
	}
	if res.Config.Concurrency() != 2 {
		t.Fatalf("expected concurrency from defaults, got %d", res.Config.Concurrency())
	}
	if v, _ := res.Config.Value("note"); v != "a=b" {
		t.Fatalf("expected value after first '=', got %q", v)
	}
	if diff := cmp.Diff([]string{"concurrency", "note", "size"}, res.Config.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsMalformedOptions(t *testing.T) {
	dir := t.TempDir()
	for _, token := range []string{"size=120", "--size", "--=5", "--concurrency=-1", "--concurrency=many"} {
		_, err := cliargs.Parse([]string{"alice", dir, token}, nil)
		if !errors.Is(err, cliargs.ErrUsage) {
			t.Fatalf("token %q: expected ErrUsage, got %v", token, err)
		}
	}
}

func TestSplitIdentifiersKeepsOrderAndDuplicates(t *testing.T) {
	got := cliargs.SplitIdentifiers(" bob ,, alice\r\n\tbob\n")
	if diff := cmp.Diff([]string{"bob", "alice", "bob"}, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if got := cliargs.SplitIdentifiers(" , \n"); len(got) != 0 {
		t.Fatalf("expected no identifiers, got %q", got)
	}
}

func TestIsPath(t *testing.T) {
	if !cliargs.IsPath("./people.txt") || !cliargs.IsPath(`C:\people.txt`) {
		t.Fatal("expected separators to mark a path")
	}
	if cliargs.IsPath("alice@example.com, bob") {
		t.Fatal("expected inline list not to be a path")
	}
}

func TestExportConfigIsCopiedOnWith(t *testing.T) {
	base := cliargs.NewExportConfig(nil)
	next := base.With(map[string]string{"size": "240"})
	if base.Size() != "96" {
		t.Fatalf("expected base to stay at 96, got %q", base.Size())
	}
	if next.Size() != "240" {
		t.Fatalf("expected override 240, got %q", next.Size())
	}
	var zero cliargs.ExportConfig
	if zero.Size() != "96" || zero.Concurrency() != 0 {
		t.Fatalf("unexpected zero-value config: size=%q concurrency=%d", zero.Size(), zero.Concurrency())
	}
}
