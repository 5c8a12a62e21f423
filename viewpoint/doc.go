// Package viewpoint holds the static catalog of model viewpoints.
//
// A viewpoint names one engineering concern and declares which element and
// relationship kinds are relevant to it. The catalog drives two things:
// filtering model queries to a concern, and presenting the set of creatable
// kinds per concern in the client palette.
//
// The catalog is fixed at build time and immutable for the process lifetime.
// It deliberately lives in memory rather than the database: seven fixed
// entries do not justify a runtime dependency. Unknown viewpoint ids degrade
// to empty results, never errors, so "no such viewpoint" and "viewpoint with
// nothing to show" look identical to callers.
package viewpoint
