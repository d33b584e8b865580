package modelpath

import (
	"fmt"
	"slices"
	"strings"
)

// Of builds a path from plain segment names.
func Of(names ...string) Path {
	p := Path{segments: make([]Segment, 0, len(names))}
	for _, n := range names {
		p.segments = append(p.segments, NewSegment(n))
	}
	return p
}

// String serializes the path into its canonical representation.
func (p Path) String() string {
	var sb strings.Builder
	for i, segment := range p.segments {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			fmt.Fprintf(&sb, "[%d]", segment.Index)
		}
	}
	return sb.String()
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []Segment {
	return slices.Clone(p.segments)
}

// Depth is the number of segments in the path.
func (p Path) Depth() int {
	return len(p.segments)
}

// IsZero reports whether the path has no segments.
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// Name returns the name of the last segment.
func (p Path) Name() string {
	if p.IsZero() {
		return ""
	}
	return p.segments[len(p.segments)-1].Name
}

// Equal checks two paths segment by segment.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	segs := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(segs, p.segments)
	return Path{segments: append(segs, NewSegment(name))}
}

// Parent returns the enclosing path. The parent of a root path is the zero path.
func (p Path) Parent() Path {
	if len(p.segments) <= 1 {
		return Path{}
	}
	return Path{segments: slices.Clone(p.segments[:len(p.segments)-1])}
}

// IsDescendantOf reports whether p lies strictly below ancestor.
func (p Path) IsDescendantOf(ancestor Path) bool {
	if len(p.segments) <= len(ancestor.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(ancestor.segments)], ancestor.segments)
}
