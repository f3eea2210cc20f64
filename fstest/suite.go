// Package fstest provides a conformance test suite for filesugar.Filesystem
// implementations.
//
// The suite checks the contract the range I/O in package stream relies on:
// whole-file reads and writes, seeking past end of file, truncation, and the
// management calls used by the convenience helpers. It also replays the
// range read and write scenarios end to end through stream.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() filesugar.Filesystem {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test.
// Paths used by the suite are relative, so a filesystem rooted at a scratch
// directory is expected.
func TestSuite(t *testing.T, newFS func() filesugar.Filesystem) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter lists top-level test names to skip (e.g. "ManageFS").
func TestSuiteWithSkip(t *testing.T, newFS func() filesugar.Filesystem, skipTests []string) {
	suites := []struct {
		name string
		run  func(*testing.T, filesugar.Filesystem)
	}{
		{name: "ReadFS", run: TestReadFS},
		{name: "WriteFS", run: TestWriteFS},
		{name: "ManageFS", run: TestManageFS},
		{name: "RangeIO", run: TestRangeIO},
	}

	for _, s := range suites {
		t.Run(s.name, func(t *testing.T) {
			if slices.Contains(skipTests, s.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			s.run(t, newFS())
		})
	}
}
