package filesugar

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyLocation is returned when an empty location is resolved.
	ErrEmptyLocation = errors.New("empty location")

	// ErrUnsupportedLocation is returned for URIs that do not name a local file,
	// e.g. a file:// URI with a remote host.
	ErrUnsupportedLocation = errors.New("unsupported location")
)

const fileScheme = "file://"

// ResolveLocation turns a location into a cleaned filesystem path.
// Accepted forms are plain paths, "~" or "~user" prefixed paths and
// file:// URIs. Relative paths stay relative so they resolve against the
// root of whichever Filesystem they are used with.
func ResolveLocation(location string) (string, error) {
	if location == "" {
		return "", ErrEmptyLocation
	}

	p := location
	if strings.HasPrefix(strings.ToLower(location), fileScheme) {
		u, err := url.Parse(location)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", location, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("%w: remote host %q in %q", ErrUnsupportedLocation, u.Host, location)
		}
		if u.Path == "" {
			return "", fmt.Errorf("%w: no path in %q", ErrUnsupportedLocation, location)
		}
		p = filepath.FromSlash(u.Path)
	}

	expanded, err := ExpandTilde(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// ExpandTilde replaces a leading "~" or "~user" with the matching home
// directory. Paths without a leading tilde are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if !IsTildePath(path) {
		return path, nil
	}

	name, rest, _ := strings.Cut(filepath.ToSlash(path[1:]), "/")

	var home string
	if name == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		home = h
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		home = u.HomeDir
	}

	if rest == "" {
		return home, nil
	}
	return filepath.Join(home, filepath.FromSlash(rest)), nil
}

// Normalize cleans path, collapsing "." and ".." elements and duplicate
// separators. An empty path normalizes to ".".
func Normalize(path string) string {
	return filepath.Clean(path)
}

// Expand resolves path against base. Tilde paths expand to the home
// directory, absolute paths are cleaned as-is, and anything else (bare names,
// "./" and "../" paths) is joined onto base.
func Expand(path, base string) (string, error) {
	switch {
	case IsTildePath(path):
		return ExpandTilde(path)
	case IsAbsolute(path):
		return Normalize(path), nil
	default:
		return Normalize(filepath.Join(base, path)), nil
	}
}

// IsAbsolute reports whether path is absolute.
func IsAbsolute(path string) bool {
	return filepath.IsAbs(path) || strings.HasPrefix(path, "/")
}

// IsParentRelative reports whether path starts by stepping out of the
// current directory ("../").
func IsParentRelative(path string) bool {
	return strings.HasPrefix(filepath.ToSlash(path), "../")
}

// IsTildePath reports whether path starts with "~".
func IsTildePath(path string) bool {
	return strings.HasPrefix(path, "~")
}
