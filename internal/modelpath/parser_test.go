package modelpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  []Segment
	}{
		{
			name:     "single root segment",
			raw:      "binaries",
			expected: []Segment{NewSegment("binaries")},
		},
		{
			name:     "nested path",
			raw:      "components.core.binaries",
			expected: []Segment{NewSegment("components"), NewSegment("core"), NewSegment("binaries")},
		},
		{
			name:     "indexed segment",
			raw:      "components.core.targets[1]",
			expected: []Segment{NewSegment("components"), NewSegment("core"), NewSegmentWithIndex("targets", 1)},
		},
		{
			name:     "hyphen and underscore inside names",
			raw:      "components.my-lib_2",
			expected: []Segment{NewSegment("components"), NewSegment("my-lib_2")},
		},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - trailing dot", raw: "a.", expectErr: true},
		{name: "error - non numeric index", raw: "a.b[x]", expectErr: true},
		{name: "error - lone hyphen", raw: "a.-", expectErr: true},
		{name: "error - index overflow", raw: "a[99999999999999999999999]", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p.Segments())
		})
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
	assert.NotPanics(t, func() { MustParse("binaries") })
}
