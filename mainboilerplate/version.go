// Package mainboilerplate contains shared boilerplate for streammsg programs.
// It provides narrowly scoped functions so callers needn't buy in to an
// all-or-nothing approach.
package mainboilerplate

// Version and BuildDate of the program, set at link time with
// -ldflags "-X go.gazette.dev/streammsg/mainboilerplate.Version=...".
var (
	Version   = "development"
	BuildDate = "unknown"
)
