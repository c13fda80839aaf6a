package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"imagepuller/internal/config"
)

const tokenHelpURL = "https://developer.microsoft.com/en-us/graph/graph-explorer"

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "MS Image Puller:")
	fmt.Fprintln(w, "\t<people>|<file> - comma delimited list of names or emails, or a file containing the list (delimiters: , newline tab).")
	fmt.Fprintln(w, "\t<target> - directory in which to place the photos.")
	fmt.Fprintf(w, "\t[--size=<int>] - dimension of photo to store. Supported values are (%s).\n", supportedSizesText())
	fmt.Fprintln(w, "\t[--concurrency=<int>] - maximum people processed at once; 0 means all at once.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\t<%s> - required environment variable for auth token (may also be set in .env or graph.token).\n", config.TokenEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "\tcheck [target] - verify the token and directory access without exporting.")
	fmt.Fprintln(w, "\tconfig init|validate - create or validate the configuration file.")
}

// supportedSizesText renders the size list with the default starred.
func supportedSizesText() string {
	defaultSize := config.Default().Export.Size
	parts := make([]string, 0, len(config.SupportedPhotoSizes))
	for _, size := range config.SupportedPhotoSizes {
		label := strconv.Itoa(size)
		if size == defaultSize {
			label = "*" + label + "*"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}
