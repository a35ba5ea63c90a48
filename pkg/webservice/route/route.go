// Package route turns a request URI into a Route and decides which
// operation serves it. Nothing in here touches the store.
package route

import (
	"strings"
)

const (
	bottlesSegment  = "bottles"
	messagesSegment = "messages"
)

// Route is the parsed, immutable form of a request path.
type Route struct {
	segments  []string
	extension string
}

// StripBase removes the configured base prefix from uri. It reports false
// when uri does not start with base.
func StripBase(uri, base string) (string, bool) {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return uri, true
	}
	if !strings.HasPrefix(uri, base) {
		return "", false
	}
	rest := uri[len(base):]
	if rest != "" && rest[0] != '/' && rest[0] != '?' {
		// "/apiv2" must not match base "/api"
		return "", false
	}
	return rest, true
}

// Parse splits uri on '/'. The query string is cut off, the final non-empty
// segment loses its extension (everything after the first '.') and empty
// segments are dropped.
func Parse(uri string) Route {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	parts := strings.Split(uri, "/")

	var r Route
	last := -1
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			last = i
			break
		}
	}
	if last >= 0 {
		if dot := strings.IndexByte(parts[last], '.'); dot >= 0 {
			r.extension = parts[last][dot+1:]
			parts[last] = parts[last][:dot]
		}
	}
	for _, p := range parts {
		if p != "" {
			r.segments = append(r.segments, p)
		}
	}
	return r
}

// Segments returns a copy of the non-empty path segments.
func (r Route) Segments() []string {
	out := make([]string, len(r.segments))
	copy(out, r.segments)
	return out
}

func (r Route) Len() int { return len(r.segments) }

// Extension is the raw extension of the last segment, if any.
func (r Route) Extension() string { return r.extension }

// Format is the lowercased extension, used as the response format hint.
func (r Route) Format() string { return strings.ToLower(r.extension) }

// Valid reports whether the route has one of the accepted shapes:
// bottles/<id>, bottles/<id>/messages or bottles/<id>/messages/<id>.
func (r Route) Valid() bool {
	n := len(r.segments)
	if n < 2 || n > 4 || r.segments[0] != bottlesSegment {
		return false
	}
	return n < 3 || r.segments[2] == messagesSegment
}

func (r Route) BottleID() string {
	if len(r.segments) < 2 {
		return ""
	}
	return r.segments[1]
}

func (r Route) MessageID() string {
	if len(r.segments) < 4 {
		return ""
	}
	return r.segments[3]
}
