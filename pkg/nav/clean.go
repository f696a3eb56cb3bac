package nav

import (
	"strings"

	"github.com/vango-dev/navheader/internal/errors"
)

// Clean canonicalizes a location received from a client: repeated slashes
// collapse, "." segments drop, ".." pops its parent and a trailing slash is
// removed. The query string is kept as is. Backslashes, NUL bytes, bad
// percent escapes and ".." above the root are rejected with E201.
//
// Menu paths are never cleaned; they are navigated exactly as derived.
func Clean(location string) (string, error) {
	path, query, hasQuery := strings.Cut(location, "?")
	if path == "" {
		path = "/"
	}

	switch {
	case strings.ContainsRune(path, '\\'):
		return "", errors.New("E201").WithDetailf("%q contains a backslash", location)
	case strings.ContainsRune(path, 0) || strings.Contains(strings.ToUpper(path), "%00"):
		return "", errors.New("E201").WithDetailf("%q contains a NUL byte", location)
	case !validEscapes(path):
		return "", errors.New("E201").WithDetailf("%q has an invalid percent escape", location)
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", errors.New("E201").WithDetailf("%q escapes the root", location)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	cleaned := "/" + strings.Join(segments, "/")
	if hasQuery {
		cleaned += "?" + query
	}
	return cleaned, nil
}

func validEscapes(path string) bool {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
