package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

type createOp struct {
	name   string
	static bool
}

// drawPlan draws distinct owner names and, per owner, a sequence of creates
// that may repeat names.
func drawPlan(t *rapid.T) ([]string, map[string][]createOp) {
	n := rapid.IntRange(0, 5).Draw(t, "owners")
	owners := make([]string, 0, n)
	seen := make(map[string]bool)
	for len(owners) < n {
		name := rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "owner")
		if !seen[name] {
			seen[name] = true
			owners = append(owners, name)
		}
	}

	ops := make(map[string][]createOp, n)
	for _, o := range owners {
		k := rapid.IntRange(0, 6).Draw(t, "creates")
		for range k {
			ops[o] = append(ops[o], createOp{
				name:   rapid.SampledFrom([]string{"main", "debug", "release", "test"}).Draw(t, "binary"),
				static: rapid.Bool().Draw(t, "static"),
			})
		}
	}
	return owners, ops
}

type created struct {
	name string
	typ  modeltype.Type
}

func runPlan(t *rapid.T, owners []string, ops map[string][]createOp) (*fixture, []*library) {
	libs := make([]*library, len(owners))
	comps := make([]model.Component, len(owners))
	for i, o := range owners {
		libs[i] = newLibrary(o)
		comps[i] = libs[i]
	}
	f := newFixture(t, comps...)

	require.NoError(t, f.register(Func("plan", func(b *Builder[linkable], lib *library) {
		for _, op := range ops[lib.Name()] {
			globalBefore, ownedBefore := f.binaries.Len(), lib.Binaries().Len()

			var (
				item linkable
				err  error
			)
			if op.static {
				item, err = CreateAs[*staticObject](b, op.name)
			} else {
				item, err = CreateAs[*sharedObject](b, op.name)
			}

			if err != nil {
				require.Equal(t, globalBefore, f.binaries.Len())
				require.Equal(t, ownedBefore, lib.Binaries().Len())
				continue
			}
			global, ok := f.binaries.Get(item.Name())
			require.True(t, ok, "%s missing from binaries", item.Name())
			require.Same(t, item, global)
			owned, ok := lib.Binaries().Get(item.Name())
			require.True(t, ok, "%s missing from %s", item.Name(), lib.Name())
			require.Same(t, item, owned)
		}
	})))
	require.NoError(t, f.realize())
	return f, libs
}

func snapshot(f *fixture) []created {
	var out []created
	for _, name := range f.binaries.Names() {
		typ, _ := f.binaries.TypeOf(name)
		out = append(out, created{name: name, typ: typ})
	}
	return out
}

func TestProperty_DualRegistration(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		owners, ops := drawPlan(t)
		f, libs := runPlan(t, owners, ops)

		total := 0
		for _, lib := range libs {
			for _, b := range lib.Binaries().All() {
				require.True(t, strings.HasPrefix(b.Name(), lib.Name()+":"), "%s owned by %s", b.Name(), lib.Name())
				global, ok := f.binaries.Get(b.Name())
				require.True(t, ok)
				require.Same(t, b, global)
			}
			total += lib.Binaries().Len()
		}
		require.Equal(t, f.binaries.Len(), total, "every binary is owned by exactly one component")
	})
}

func TestProperty_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		owners, ops := drawPlan(t)

		first, _ := runPlan(t, owners, ops)
		second, _ := runPlan(t, owners, ops)

		require.Equal(t, snapshot(first), snapshot(second))

		var want []string
		for _, o := range owners {
			seen := make(map[string]bool)
			for _, op := range ops[o] {
				if !seen[op.name] {
					seen[op.name] = true
					want = append(want, fmt.Sprintf("%s:%s", o, op.name))
				}
			}
		}
		if want == nil {
			want = []string{}
		}
		require.Equal(t, want, first.binaries.Names())
	})
}
