// Package url implements the URLs used to name configuration files.
//
// A URL is a scheme and a slash-separated path, like "file:a/b.conf". Unlike
// net/url, this package keeps relative paths relative, so that a file loaded
// as "file:a.conf" includes "file:b.conf" and reports errors with the same
// short names the user wrote.
package url

import (
	"path"
	"path/filepath"
	"strings"
)

// URL is an immutable scheme and path pair. The zero value is the empty
// relative URL with no scheme.
type URL struct {
	scheme string
	path   string
}

// Parse parses a URL. A leading "scheme:" is recognized when the scheme is at
// least two characters long, so that Windows drive letters are treated as
// part of the path. An authority component ("//host") after the scheme is
// dropped. Parse never fails; any text is a valid URL.
func Parse(s string) URL {
	scheme, rest := splitScheme(s)
	if scheme != "" && strings.HasPrefix(rest, "//") {
		// Drop the authority; "file:///a" has the path "/a".
		rest = rest[2:]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[i:]
		} else {
			rest = ""
		}
	}
	return URL{scheme, rest}
}

// New returns a URL with the given scheme and path.
func New(scheme, p string) URL {
	return URL{scheme, p}
}

// FromPath converts a filesystem path to a URL with the "file" scheme.
func FromPath(p string) URL {
	return URL{"file", filepath.ToSlash(p)}
}

func splitScheme(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':' && i >= 2:
			return strings.ToLower(s[:i]), s[i+1:]
		default:
			return "", s
		}
	}
	return "", s
}

// IsValidScheme reports whether s can be used as the scheme of a URL literal.
func IsValidScheme(s string) bool {
	scheme, rest := splitScheme(s + ":")
	return scheme != "" && rest == ""
}

// Scheme returns the scheme of the URL, or "" if it has none.
func (u URL) Scheme() string { return u.scheme }

// Path returns the slash-separated path of the URL.
func (u URL) Path() string { return u.path }

// IsZero reports whether u is the zero URL.
func (u URL) IsZero() bool { return u == URL{} }

// IsRelative reports whether the path of the URL is relative.
func (u URL) IsRelative() bool { return !strings.HasPrefix(u.path, "/") }

// Filename returns the path of the URL in the form used by the operating
// system.
func (u URL) Filename() string { return filepath.FromSlash(u.path) }

// Base returns the last element of the path.
func (u URL) Base() string {
	if i := strings.LastIndexByte(u.path, '/'); i >= 0 {
		return u.path[i+1:]
	}
	return u.path
}

// Parent returns the URL of the directory containing u. The parent of
// "file:a.conf" is "file:", and the parent of "file:/a/b.conf" is "file:/a".
func (u URL) Parent() URL {
	i := strings.LastIndexByte(u.path, '/')
	switch {
	case i < 0:
		return URL{u.scheme, ""}
	case i == 0:
		return URL{u.scheme, "/"}
	default:
		return URL{u.scheme, u.path[:i]}
	}
}

// Join resolves other against u, which is treated as a directory. If other is
// absolute it is returned with u's scheme filled in when it has none.
// Otherwise its path is appended to u's path and the result is cleaned.
func (u URL) Join(other URL) URL {
	scheme := other.scheme
	if scheme == "" {
		scheme = u.scheme
	}
	if !other.IsRelative() {
		return URL{scheme, clean(other.path)}
	}
	switch {
	case other.path == "":
		return URL{scheme, u.path}
	case u.path == "":
		return URL{scheme, clean(other.path)}
	default:
		return URL{scheme, clean(u.path + "/" + other.path)}
	}
}

// JoinPath is like Join, but takes the relative part as a plain path.
func (u URL) JoinPath(p string) URL {
	return u.Join(URL{path: p})
}

func clean(p string) string {
	if p == "" {
		return ""
	}
	c := path.Clean(p)
	if c == "." {
		return ""
	}
	return c
}

// Equal reports whether two URLs have the same scheme and path.
func (u URL) Equal(other URL) bool { return u == other }

// Compare compares two URLs by their string forms.
func (u URL) Compare(other URL) int {
	return strings.Compare(u.String(), other.String())
}

// String returns the textual form of the URL, "scheme:path".
func (u URL) String() string {
	if u.scheme == "" {
		return u.path
	}
	return u.scheme + ":" + u.path
}
