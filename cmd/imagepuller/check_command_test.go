package main

import (
	"path/filepath"
	"testing"

	"imagepuller/internal/testsupport"
)

func TestCheckCommandPasses(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", env.target})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Microsoft Graph:")
	requireContains(t, out, "[OK] Signed in as Test User")
	requireContains(t, out, "Target directory:")
}

func TestCheckCommandReportsBadToken(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithToken("wrong"))

	out, _, err := runCLI(t, []string{"check"})
	if err == nil {
		t.Fatal("expected check to fail with rejected token")
	}
	requireContains(t, out, "[ERROR] auth failed")
	if len(env.graph.Requests()) != 1 {
		t.Fatalf("expected a single /me call, got %v", env.graph.Requests())
	}
}

func TestCheckCommandReportsMissingTarget(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected check to fail for missing target")
	}
	requireContains(t, out, "does not exist")
}
