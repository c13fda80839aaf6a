// Package cliargs turns raw command-line tokens into a validated export
// request.
//
// The grammar is positional: a people source (an inline list or a path to a
// file holding the list), a target directory, then any number of
// --key=value options merged over the export defaults. Filesystem checks
// happen here so a bad source or target aborts the run before any network
// call is made.
package cliargs
