package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"imagepuller/internal/export"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Graph", statusError, "auth failed", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Graph:", "[ERROR] auth failed")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Graph", statusOK, "Reachable", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Person", "Outcome", "Detail"}, [][]string{{"alice", "saved"}}, []columnAlignment{alignLeft, alignRight})
	for _, want := range []string{"PERSON", "OUTCOME", "alice", "saved"} {
		requireContains(t, out, want)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestPrintSummary(t *testing.T) {
	summary := export.Summary{
		Results: []export.Result{
			{Identifier: "alice", Outcome: export.OutcomeSaved, Path: "/photos/alice.smith.jpeg", Bytes: 2048},
			{Identifier: "ghost", Outcome: export.OutcomeSkipped, Reason: export.ReasonNotFound},
		},
		Saved:   1,
		Skipped: 1,
	}
	var buf bytes.Buffer
	printSummary(&buf, summary)
	out := buf.String()
	for _, want := range []string{"BYTES", "/photos/alice.smith.jpeg", "not_found", "[OK] 1", "[WARN] 1", "[INFO] 0"} {
		requireContains(t, out, want)
	}
	// Byte counts are right-aligned: the short value is padded on the left.
	requireContains(t, out, "│  2048 │")

	buf.Reset()
	printSummary(&buf, export.Summary{})
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty summary, got %q", buf.String())
	}
}

func TestSupportedSizesTextStarsDefault(t *testing.T) {
	got := supportedSizesText()
	if !strings.Contains(got, "*96*") || !strings.HasPrefix(got, "48, 64") {
		t.Fatalf("unexpected sizes text %q", got)
	}
}
