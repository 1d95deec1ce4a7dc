package assertions

import (
	"os"
	"slices"
	"strings"
)

// FilePath is a Path over file system style segments. Redundant separators
// are dropped when parsing but "." and ".." are kept as written, so EndsWith
// and StartsWith compare segments exactly as given.
type FilePath struct {
	absolute bool
	segments []string
}

// NewFilePath parses p, accepting both "/" and the OS separator.
func NewFilePath(p string) FilePath {
	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	return FilePath{
		absolute: strings.HasPrefix(p, "/") || (os.PathSeparator != '/' && strings.HasPrefix(p, string(os.PathSeparator))),
		segments: fields,
	}
}

func (p FilePath) IsAbsolute() bool {
	return p.absolute
}

// Segments returns a copy of the path's name elements.
func (p FilePath) Segments() []string {
	return append([]string(nil), p.segments...)
}

func (p FilePath) String() string {
	joined := strings.Join(p.segments, "/")
	if p.absolute {
		return "/" + joined
	}
	return joined
}

// EndsWith reports whether other's segments are the trailing segments of p.
// An absolute other only matches an identical absolute path, and an empty
// other only matches an empty path. A nil other matches nothing.
func (p FilePath) EndsWith(other Path) bool {
	o, ok := asFilePath(other)
	if !ok {
		return false
	}
	if o.absolute {
		return p.absolute && slices.Equal(p.segments, o.segments)
	}
	if len(o.segments) == 0 {
		return len(p.segments) == 0 && !p.absolute
	}
	if len(o.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[len(p.segments)-len(o.segments):], o.segments)
}

// StartsWith reports whether other's segments are the leading segments of p
// and both paths agree on being absolute. The root is a prefix of every
// absolute path. A nil other matches nothing.
func (p FilePath) StartsWith(other Path) bool {
	o, ok := asFilePath(other)
	if !ok {
		return false
	}
	if o.absolute != p.absolute {
		return false
	}
	if len(o.segments) == 0 {
		return p.absolute || len(p.segments) == 0
	}
	if len(o.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(o.segments)], o.segments)
}

// Normalize removes "." segments and folds ".." into its parent. Leading
// ".." segments of a relative path are kept; on an absolute path they are
// dropped.
func (p FilePath) Normalize() Path {
	out := make([]string, 0, len(p.segments))
	for _, seg := range p.segments {
		switch seg {
		case ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
				continue
			}
			if p.absolute {
				continue
			}
		}
		out = append(out, seg)
	}
	return FilePath{absolute: p.absolute, segments: out}
}

func asFilePath(other Path) (FilePath, bool) {
	if isNilPath(other) {
		return FilePath{}, false
	}
	switch o := other.(type) {
	case FilePath:
		return o, true
	case *FilePath:
		return *o, true
	default:
		return NewFilePath(other.String()), true
	}
}
