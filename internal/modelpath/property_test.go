package modelpath

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func segmentGen() *rapid.Generator[Segment] {
	return rapid.Custom(func(t *rapid.T) Segment {
		name := rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`).Draw(t, "name")
		if rapid.Bool().Draw(t, "indexed") {
			return NewSegmentWithIndex(name, rapid.IntRange(0, 999).Draw(t, "index"))
		}
		return NewSegment(name)
	})
}

func TestPath_StringParsesBack(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		segments := rapid.SliceOfN(segmentGen(), 1, 5).Draw(rt, "segments")
		p := Path{segments: segments}

		parsed, err := Parse(p.String())
		require.NoError(rt, err)
		require.True(rt, p.Equal(parsed), "%s parsed as %s", p, parsed)
		require.Equal(rt, p.String(), parsed.String())
	})
}

func TestPath_ChildParentInverse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		segments := rapid.SliceOfN(segmentGen(), 1, 5).Draw(rt, "segments")
		p := Path{segments: segments}
		name := rapid.StringMatching(`[a-z][a-z0-9]{0,6}`).Draw(rt, "child")

		child := p.Child(name)
		require.Equal(rt, p.Depth()+1, child.Depth())
		require.Equal(rt, name, child.Name())
		require.True(rt, p.Equal(child.Parent()))
	})
}
