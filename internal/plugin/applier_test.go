package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modelgrid/internal/project"
)

type fakePlugin struct {
	token    Token
	requires []Token
	calls    *[]Token
	err      error
}

func (f *fakePlugin) Token() Token      { return f.token }
func (f *fakePlugin) Requires() []Token { return f.requires }

func (f *fakePlugin) Apply(context.Context, *project.Project) error {
	*f.calls = append(*f.calls, f.token)
	return f.err
}

func TestDependencySet_DeduplicatesInOrder(t *testing.T) {
	var s DependencySet
	s.Require("b")
	s.Require("a")
	s.Require("b")
	assert.Equal(t, []Token{"b", "a"}, s.Tokens())
}

func TestApplier_AppliesRequirementsFirstAndOnce(t *testing.T) {
	var calls []Token
	a := NewApplier(project.New(nil),
		&fakePlugin{token: "native", requires: []Token{ComponentModelBase}, calls: &calls},
		&fakePlugin{token: ComponentModelBase, calls: &calls},
	)

	require.NoError(t, a.Apply(context.Background(), "native", ComponentModelBase, "native"))
	assert.Equal(t, []Token{ComponentModelBase, "native"}, calls)
	assert.Equal(t, []Token{ComponentModelBase, "native"}, a.Applied())
	assert.True(t, a.IsApplied("native"))
}

func TestApplier_Errors(t *testing.T) {
	t.Run("unknown plugin", func(t *testing.T) {
		a := NewApplier(project.New(nil))
		assert.ErrorIs(t, a.Apply(context.Background(), ComponentModelBase), ErrUnknownPlugin)
	})

	t.Run("unknown requirement", func(t *testing.T) {
		var calls []Token
		a := NewApplier(project.New(nil), &fakePlugin{token: "native", requires: []Token{"missing"}, calls: &calls})
		err := a.Apply(context.Background(), "native")
		assert.ErrorIs(t, err, ErrUnknownPlugin)
		assert.ErrorContains(t, err, `plugin "native" requires "missing"`)
		assert.Empty(t, calls)
	})

	t.Run("requirement cycle", func(t *testing.T) {
		var calls []Token
		a := NewApplier(project.New(nil),
			&fakePlugin{token: "a", requires: []Token{"b"}, calls: &calls},
			&fakePlugin{token: "b", requires: []Token{"a"}, calls: &calls},
		)
		assert.ErrorContains(t, a.Apply(context.Background(), "a"), "plugin requirement cycle: a -> b -> a")
	})

	t.Run("apply failure is not recorded as applied", func(t *testing.T) {
		var calls []Token
		boom := errors.New("boom")
		a := NewApplier(project.New(nil), &fakePlugin{token: "a", calls: &calls, err: boom})
		assert.ErrorIs(t, a.Apply(context.Background(), "a"), boom)
		assert.False(t, a.IsApplied("a"))
	})

	t.Run("duplicate offer panics", func(t *testing.T) {
		var calls []Token
		assert.Panics(t, func() {
			NewApplier(project.New(nil), &fakePlugin{token: "a", calls: &calls}, &fakePlugin{token: "a", calls: &calls})
		})
	})
}
