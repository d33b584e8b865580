package modeltype

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type shape interface{ Area() int }

type square struct{ side int }

func (s *square) Area() int { return s.side * s.side }

type circle struct{}

func TestTypeOf_Names(t *testing.T) {
	assert.Equal(t, "square", TypeOf[*square]().Name())
	assert.Equal(t, "*modeltype.square", TypeOf[*square]().String())
	assert.Equal(t, "shape", TypeOf[shape]().Name())
	assert.Equal(t, "<invalid>", Type{}.Name())
	assert.Equal(t, []string{"square", "circle"}, Names([]Type{TypeOf[*square](), TypeOf[circle]()}))
}

func TestType_Assignability(t *testing.T) {
	sq := TypeOf[*square]()
	sh := TypeOf[shape]()
	ci := TypeOf[*circle]()

	assert.True(t, sq.AssignableTo(sh))
	assert.True(t, sq.AssignableTo(sq))
	assert.False(t, sh.AssignableTo(sq))
	assert.False(t, ci.AssignableTo(sh))
	assert.False(t, Type{}.AssignableTo(sh))

	assert.True(t, sq.Implements(sh))
	assert.False(t, sq.Implements(sq), "concrete types are never implemented")
	assert.True(t, sh.IsInterface())
	assert.False(t, sq.IsInterface())
}

func TestType_Comparable(t *testing.T) {
	seen := map[Type]bool{TypeOf[*square](): true}
	assert.True(t, seen[OfValue(&square{})])
	assert.False(t, seen[TypeOf[square]()])
	assert.Equal(t, "*modeltype.square", fmt.Sprint(OfValue(&square{})))
}
