// Package graph is the minimal Microsoft Graph client used to export profile
// photos.
//
// It issues the three authenticated reads the export pipeline needs: a people
// search for an identifier, the photo metadata for a resolved user, and the
// sized photo binary. The bearer token is injected at construction so tests
// can point the client at an httptest server. Absent results are reported as
// sentinel errors (ErrNotFound, ErrNoPhoto) so callers can classify them with
// errors.Is instead of inspecting status codes.
package graph
