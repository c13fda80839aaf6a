package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"imagepuller/internal/config"
	"imagepuller/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	graph      *testsupport.GraphServer
	target     string
}

func defaultPeople() map[string][]testsupport.GraphPerson {
	return map[string][]testsupport.GraphPerson{
		"Alice Smith": {{ID: "u-alice", GivenName: "Alice", Surname: "Smith", MediaType: "image/jpeg", Photo: []byte{0xff, 0xd8, 0x01, 0xff, 0xd9}}},
		"Bob Jones":   {{ID: "u-bob", GivenName: "Bob", Surname: "Jones", MediaType: "image/png", Photo: []byte("\x89PNG-bob")}},
		"No Photo":    {{ID: "u-nophoto", GivenName: "No", Surname: "Photo"}},
	}
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv(config.TokenEnv, "")
	t.Chdir(base)

	server := testsupport.NewGraphServer(t, defaultPeople())
	opts = append([]testsupport.ConfigOption{testsupport.WithGraphURL(server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	configPath := testsupport.WriteConfig(t, cfg)
	t.Setenv(config.ConfigPathEnv, configPath)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		graph:      server,
		target:     t.TempDir(),
	}
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
