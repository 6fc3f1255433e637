package propath

import (
	"fmt"
	"strings"
)

// Position represents the location of a segment within the original path.
// Offset and Length are rune based.
type Position struct {
	Offset int
	Length int
}

// Segment is a single property name of a dotted path.
type Segment struct {
	Name string
	Pos  Position
}

// Path is a parsed dotted path.
type Path []Segment

// String joins the segments back with dots.
func (p Path) String() string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}

	return strings.Join(names, ".")
}

// Container returns the path of the object holding the last segment and the
// last segment name. The container of a single segment path is empty.
func (p Path) Container() (Path, string) {
	if len(p) == 0 {
		return nil, ""
	}

	return p[:len(p)-1], p[len(p)-1].Name
}

// Parse splits a dotted path into segments.
// Segment names are taken verbatim, so "items.0" and "first-name" are valid.
func Parse(path string) (Path, error) {
	src := []rune(path)
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var (
		segments Path
		start    int
	)

	for i := 0; i <= len(src); i++ {
		if i < len(src) && src[i] != '.' {
			continue
		}

		if i == start {
			return nil, fmt.Errorf("%w: empty segment at position %d in %q", ErrInvalidPath, start+1, path)
		}

		segments = append(segments, Segment{
			Name: string(src[start:i]),
			Pos:  Position{Offset: start, Length: i - start},
		})
		start = i + 1
	}

	return segments, nil
}

// MustParse is like Parse but panics on error.
func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return p
}
