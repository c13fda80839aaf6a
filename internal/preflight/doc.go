// Package preflight provides readiness checks for the Graph credential and
// the filesystem paths imagepuller depends on.
//
// These checks run in two contexts:
//   - An export run calls RunAll before any network traffic so an unwritable
//     target directory fails the run up front instead of once per person.
//   - The CLI "imagepuller check" command also calls CheckGraphFromConfig to
//     confirm the token is accepted.
package preflight
