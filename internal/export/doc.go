// Package export runs the per-person photo pipeline.
//
// For each identifier an Exporter resolves the person through a
// graph.Directory, fetches the photo's media type and binary, and streams the
// binary into the target directory as "{given}.{surname}.{ext}" in lower case.
// Every failure is contained to the identifier it belongs to: it is logged as
// a warning, recorded as a skipped or failed Result, and the batch carries on.
// ExportAll fans out over the identifiers and reports a Summary once every
// attempt has settled.
package export
