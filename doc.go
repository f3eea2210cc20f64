// Package filesugar provides small helpers over a host filesystem.
//
// The filesystem itself is abstracted behind the Filesystem and File
// interfaces so the same helpers run against the native OS filesystem or an
// in-memory one (see the billy subpackage). Random-access byte-range I/O
// lives in the stream subpackage; this package holds the interfaces, location
// resolution and the thin convenience layer (copy, move, append, listing).
//
// Locations may be plain paths, "~"-prefixed paths or file:// URIs:
//
//	p, err := filesugar.ResolveLocation("file:///tmp/data.bin")
//	// p == "/tmp/data.bin"
package filesugar
