package stagegraph

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Empty(t, g.Stages())

	order, err := g.Finalize()
	require.NoError(t, err)
	assert.Empty(t, order)
	assert.Empty(t, g.TopoGroups())
}

func TestAddStage(t *testing.T) {
	t.Run("registers in order", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddStage("b", nil, nil))
		require.NoError(t, g.AddStage("a", nil, nil))
		assert.Equal(t, []string{"b", "a"}, g.Stages())
		assert.True(t, g.Has("a"))
		assert.False(t, g.Has("c"))
	})

	t.Run("duplicate stage is rejected", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddStage("upload", nil, nil))

		err := g.AddStage("upload", nil, nil)
		require.ErrorIs(t, err, ErrDuplicateStage)

		var dup *DuplicateStageError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "upload", dup.Stage)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		g := New()
		assert.Error(t, g.AddStage("", nil, nil))
	})
}

func TestFinalize_RegistrationOrderIndependent(t *testing.T) {
	t.Parallel()

	// "render" runs after "upload", whichever is registered first.
	forward := New()
	require.NoError(t, forward.AddStage("upload", nil, nil))
	require.NoError(t, forward.AddStage("render", []string{"upload"}, nil))

	backward := New()
	require.NoError(t, backward.AddStage("render", []string{"upload"}, nil))
	require.NoError(t, backward.AddStage("upload", nil, nil))

	for _, g := range []*Graph{forward, backward} {
		order, err := g.Finalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"upload", "render"}, order)
	}
}

func TestFinalize_BeforeEdgesAreReversed(t *testing.T) {
	g := New()
	require.NoError(t, g.AddStage("present", nil, nil))
	require.NoError(t, g.AddStage("simulate", nil, []string{"render"}))
	require.NoError(t, g.AddStage("render", nil, []string{"present"}))

	order, err := g.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"simulate", "render", "present"}, order)

	deps, err := g.Dependencies("render")
	require.NoError(t, err)
	assert.Equal(t, []string{"simulate"}, deps)
}

func TestFinalize_IsStable(t *testing.T) {
	g := New()
	require.NoError(t, g.AddStage("d", []string{"b", "c"}, nil))
	require.NoError(t, g.AddStage("c", []string{"a"}, nil))
	require.NoError(t, g.AddStage("b", []string{"a"}, nil))
	require.NoError(t, g.AddStage("a", nil, nil))
	require.NoError(t, g.AddStage("e", nil, nil))

	first, err := g.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, first)

	for i := 0; i < 10; i++ {
		again, err := g.Finalize()
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFinalize_UnknownStage(t *testing.T) {
	testCases := []struct {
		name      string
		after     []string
		before    []string
		direction string
	}{
		{name: "after", after: []string{"missing"}, direction: "after"},
		{name: "before", before: []string{"missing"}, direction: "before"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			require.NoError(t, g.AddStage("render", tc.after, tc.before))

			order, err := g.Finalize()
			require.ErrorIs(t, err, ErrUnknownStage)
			assert.Nil(t, order)

			var unknown *UnknownStageError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, "render", unknown.Stage)
			assert.Equal(t, "missing", unknown.Ref)
			assert.Equal(t, tc.direction, unknown.Direction)
		})
	}
}

func TestFinalize_Cycles(t *testing.T) {
	t.Run("three stage cycle names every participant", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddStage("A", []string{"C"}, nil))
		require.NoError(t, g.AddStage("B", []string{"A"}, nil))
		require.NoError(t, g.AddStage("C", []string{"B"}, nil))

		order, err := g.Finalize()
		require.ErrorIs(t, err, ErrCyclicDependency)
		assert.Nil(t, order, "a cyclic graph must never yield a partial order")

		var cyc *CyclicDependencyError
		require.True(t, errors.As(err, &cyc))
		got := append([]string(nil), cyc.Stages...)
		sort.Strings(got)
		assert.Equal(t, []string{"A", "B", "C"}, got)
		assert.Contains(t, err.Error(), "cycle detected")
	})

	t.Run("self reference is a one stage cycle", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddStage("loop", []string{"loop"}, nil))

		_, err := g.Finalize()
		var cyc *CyclicDependencyError
		require.True(t, errors.As(err, &cyc))
		assert.Equal(t, []string{"loop"}, cyc.Stages)
	})

	t.Run("cycle through before edge", func(t *testing.T) {
		g := New()
		// x after y, and x before y: y -> x -> y.
		require.NoError(t, g.AddStage("x", []string{"y"}, []string{"y"}))
		require.NoError(t, g.AddStage("y", nil, nil))

		_, err := g.Finalize()
		require.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("cycle in a disjoint component", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddStage("a", nil, nil))
		require.NoError(t, g.AddStage("b", []string{"a"}, nil))
		require.NoError(t, g.AddStage("y", []string{"z"}, nil))
		require.NoError(t, g.AddStage("z", []string{"y"}, nil))

		_, err := g.Finalize()
		var cyc *CyclicDependencyError
		require.True(t, errors.As(err, &cyc))
		got := append([]string(nil), cyc.Stages...)
		sort.Strings(got)
		assert.Equal(t, []string{"y", "z"}, got)
	})
}

func TestTopoGroups(t *testing.T) {
	g := New()
	require.NoError(t, g.AddStage("render", []string{"upload", "simulate"}, nil))
	require.NoError(t, g.AddStage("upload", nil, nil))
	require.NoError(t, g.AddStage("simulate", nil, nil))
	require.NoError(t, g.AddStage("present", []string{"render"}, nil))
	require.NoError(t, g.AddStage("audio", nil, nil))

	groups := g.TopoGroups()
	assert.Equal(t, [][]string{
		{"audio", "simulate", "upload"},
		{"render"},
		{"present"},
	}, groups)

	// Flattened layers cover exactly the finalized stage set.
	order, err := g.Finalize()
	require.NoError(t, err)

	var flat []string
	seen := make(map[string]bool)
	for _, layer := range groups {
		for _, name := range layer {
			if !seen[name] {
				seen[name] = true
				flat = append(flat, name)
			}
		}
	}
	sort.Strings(flat)
	expected := append([]string(nil), order...)
	sort.Strings(expected)
	assert.Equal(t, expected, flat)
}

func TestTopoGroups_NeverFails(t *testing.T) {
	g := New()
	require.NoError(t, g.AddStage("ok", nil, nil))
	require.NoError(t, g.AddStage("dangling", []string{"missing"}, nil))
	require.NoError(t, g.AddStage("p", []string{"q"}, nil))
	require.NoError(t, g.AddStage("q", []string{"p"}, nil))

	assert.Equal(t, [][]string{{"dangling", "ok"}}, g.TopoGroups())
}

func TestDependencies_UnknownStage(t *testing.T) {
	g := New()
	_, err := g.Dependencies("nope")
	assert.ErrorIs(t, err, ErrUnknownStage)
}
