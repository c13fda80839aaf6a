package textutil

import "strings"

// pathSeparatorReplacer neutralizes characters that would move a file out of
// its directory.
var pathSeparatorReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	"\x00", "_",
)

// SanitizeNamePart trims a filename component and replaces path separators
// and NUL bytes with underscores. Everything else, including dots and
// non-ASCII letters, is kept as is.
func SanitizeNamePart(part string) string {
	return pathSeparatorReplacer.Replace(strings.TrimSpace(part))
}
