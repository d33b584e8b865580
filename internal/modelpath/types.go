package modelpath

// Segment represents a single component of a path, e.g. `name[index]`.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewSegment creates a new path segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewSegmentWithIndex creates a new path segment that includes an index.
func NewSegmentWithIndex(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the segment has an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Path is the structured address of a node in the model graph.
type Path struct {
	segments []Segment
}

// Well-known root nodes created by the component model base plugin.
var (
	Components = MustParse("components")
	Binaries   = MustParse("binaries")
)
