package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/store"
)

type todoState struct {
	Title string
	Items []string
	Done  map[string]bool
}

func todoSlice() *store.Slice[todoState] {
	return store.NewSlice("todos", todoState{Title: "list", Done: map[string]bool{}}, map[string]store.Reducer[todoState]{
		"add": store.Handle(func(s todoState, item string) todoState {
			s.Items = append(s.Items, item)
			return s
		}),
		"complete": store.Handle(func(s todoState, item string) todoState {
			s.Done[item] = true
			return s
		}),
		"rename": store.HandleMeta(func(s todoState, title string, suffix int) todoState {
			s.Title = title
			for range suffix {
				s.Title += "!"
			}
			return s
		}),
		"noop": func(s todoState, _ store.Action) todoState {
			return s
		},
	})
}

func TestSlice_Actions(t *testing.T) {
	t.Parallel()

	s := todoSlice()
	assert.Equal(t, "todos", s.Name())
	assert.Equal(t, []string{"add", "complete", "noop", "rename"}, s.Keys())
	assert.Equal(t, "todos/add", s.Type("add"))

	actions := s.Actions()
	require.Len(t, actions, 4)

	a := actions["add"]("milk")
	assert.Equal(t, store.Action{Type: "todos/add", Payload: "milk"}, a)

	a = actions["rename"]("groceries", 2)
	assert.Equal(t, "todos/rename", a.Type)
	assert.Equal(t, 2, a.Meta)

	_, err := s.Action("missing")
	assert.ErrorIs(t, err, store.ErrUnknownReducer)

	create, err := s.Action("complete")
	require.NoError(t, err)
	assert.Equal(t, "todos/complete", create("x").Type)
}

func TestSlice_Reduce(t *testing.T) {
	t.Parallel()

	t.Run("applies matching reducer without touching input", func(t *testing.T) {
		t.Parallel()
		s := todoSlice()
		state := s.Initial()

		next := s.Reduce(state, s.Actions()["add"]("milk"))
		next = s.Reduce(next, s.Actions()["complete"]("milk"))

		assert.Equal(t, []string{"milk"}, next.Items)
		assert.True(t, next.Done["milk"])
		assert.Empty(t, state.Items)
		assert.Empty(t, state.Done)
	})

	t.Run("result never aliases input", func(t *testing.T) {
		t.Parallel()
		s := todoSlice()
		state := todoState{Items: []string{"a"}, Done: map[string]bool{"a": false}}

		next := s.Reduce(state, s.Actions()["noop"](nil))
		require.Equal(t, state, next)

		next.Items[0] = "changed"
		next.Done["a"] = true
		assert.Equal(t, "a", state.Items[0])
		assert.False(t, state.Done["a"])
	})

	t.Run("unknown action is a no-op", func(t *testing.T) {
		t.Parallel()
		s := todoSlice()
		state := todoState{Title: "t", Items: []string{"x"}, Done: map[string]bool{}}

		next := s.Reduce(state, store.Action{Type: "other/add", Payload: "y"})
		assert.Equal(t, state, next)

		next.Items[0] = "z"
		assert.Equal(t, "x", state.Items[0])
	})

	t.Run("same key on different slices does not collide", func(t *testing.T) {
		t.Parallel()
		s := todoSlice()
		other := store.NewSlice("archive", todoState{}, map[string]store.Reducer[todoState]{
			"add": store.Handle(func(s todoState, item string) todoState {
				s.Title = item
				return s
			}),
		})

		next := s.Reduce(s.Initial(), other.Actions()["add"]("milk"))
		assert.Empty(t, next.Items)
		assert.Equal(t, "list", next.Title)
	})

	t.Run("typed payload mismatch leaves draft unchanged", func(t *testing.T) {
		t.Parallel()
		s := todoSlice()

		next := s.Reduce(s.Initial(), s.Actions()["add"](42))
		assert.Empty(t, next.Items)

		next = s.Reduce(s.Initial(), s.Actions()["rename"]("x", "not-an-int"))
		assert.Equal(t, "list", next.Title)
	})
}

func TestNewSlice_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		store.NewSlice("", todoState{}, map[string]store.Reducer[todoState]{})
	})
	assert.Panics(t, func() {
		store.NewSlice("x", todoState{}, map[string]store.Reducer[todoState]{"nil": nil})
	})
}
