package cliargs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrSource marks a people source path that is missing, unreadable, or a directory.
	ErrSource = errors.New("invalid people source")
	// ErrTarget marks a target path that is missing or not a directory.
	ErrTarget = errors.New("invalid target directory")
	// ErrUsage marks an option token that is not of the form --key=value.
	ErrUsage = errors.New("invalid option")
)

var helpTokens = []string{"help", "--help", "-h"}

// Result is the outcome of Parse. When Help is set the other fields are empty.
type Result struct {
	Help      bool
	People    []string
	TargetDir string
	Config    ExportConfig
}

// Parse validates args, which exclude the program name. defaults seed the
// export configuration beneath the --key=value options; the built-in size
// default applies when defaults does not name one.
//
// An absent target yields an empty TargetDir and an empty people list yields
// no People; both are reported by the caller so it can print guidance.
func Parse(args []string, defaults map[string]string) (Result, error) {
	if IsHelp(args) {
		return Result{Help: true}, nil
	}

	people, err := parseSource(args[0])
	if err != nil {
		return Result{}, err
	}

	var target string
	if len(args) > 1 {
		if target, err = parseTarget(args[1]); err != nil {
			return Result{}, err
		}
	}

	var options []string
	if len(args) > 2 {
		options = args[2:]
	}
	cfg, err := parseConfig(options, defaults)
	if err != nil {
		return Result{}, err
	}

	return Result{People: people, TargetDir: target, Config: cfg}, nil
}

// IsHelp reports whether args ask for usage information: no first token, an
// empty one, or one of help, --help, -h. A whitespace-only token is a people
// source that happens to name nobody.
func IsHelp(args []string) bool {
	return len(args) == 0 || args[0] == "" || slices.Contains(helpTokens, args[0])
}

// IsPath reports whether a people source should be read from disk rather
// than split inline.
func IsPath(source string) bool {
	return strings.ContainsAny(source, `/\`)
}

// SplitIdentifiers splits raw on commas, newlines, and tabs, trims each
// entry, and drops empty ones. Order and duplicates are preserved.
func SplitIdentifiers(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSource(source string) ([]string, error) {
	if !IsPath(source) {
		return SplitIdentifiers(source), nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s from file system: %w", ErrSource, source, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: must provide a file for source, directory %s provided instead", ErrSource, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrSource, source, err)
	}
	return SplitIdentifiers(string(data)), nil
}

func parseTarget(target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("%w: read %s from file system: %w", ErrTarget, target, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: must provide a directory for target, file %s provided instead", ErrTarget, target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", ErrTarget, target, err)
	}
	return abs, nil
}

func parseConfig(tokens []string, defaults map[string]string) (ExportConfig, error) {
	overrides := make(map[string]string, len(tokens))
	for _, token := range tokens {
		key, value, err := splitOption(token)
		if err != nil {
			return ExportConfig{}, err
		}
		overrides[key] = value
	}

	cfg := NewExportConfig(defaults).With(overrides)
	if err := cfg.validate(); err != nil {
		return ExportConfig{}, err
	}
	return cfg, nil
}

func splitOption(token string) (string, string, error) {
	rest, ok := strings.CutPrefix(token, "--")
	if !ok {
		return "", "", fmt.Errorf("%w %q: expected --key=value", ErrUsage, token)
	}
	key, value, ok := strings.Cut(rest, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w %q: expected --key=value", ErrUsage, token)
	}
	return key, value, nil
}
