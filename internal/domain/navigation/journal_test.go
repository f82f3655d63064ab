package navigation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func resolvedFor(t require.TestingT, reg RegistryProvider, names ...string) ResolvedPath {
	b := NewBuilder(reg, nil)
	for _, n := range names {
		b.AddSegment(n)
	}
	resolved, err := b.Build()
	require.NoError(t, err)
	return resolved
}

func TestJournal_Empty(t *testing.T) {
	j := NewJournal()

	require.False(t, j.CanGoBack())
	require.False(t, j.CanGoForward())
	require.Equal(t, -1, j.Cursor())
	_, ok := j.Current()
	require.False(t, ok)

	_, err := j.GoBack()
	require.ErrorIs(t, err, ErrEmptyJournal)
	var emptyErr *EmptyJournalError
	require.True(t, errors.As(err, &emptyErr))
	require.Equal(t, "back", emptyErr.Direction)
}

func TestJournal_BranchAndTruncate(t *testing.T) {
	reg := newTestRegistry(t)
	p1 := resolvedFor(t, reg, "Root")
	p2 := resolvedFor(t, reg, "Inbox")
	p3 := resolvedFor(t, reg, "Settings")
	j := NewJournal()

	j.Push(p1)
	require.False(t, j.CanGoBack(), "a single entry has no previous entry")

	j.Push(p2)
	require.True(t, j.CanGoBack())

	back, err := j.GoBack()
	require.NoError(t, err)
	require.Equal(t, p1, back)
	require.True(t, j.CanGoForward())

	j.Push(p3)
	require.False(t, j.CanGoForward())
	entries := j.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, p1, entries[0].Path)
	require.Equal(t, p3, entries[1].Path)
}

func TestJournal_GoForward(t *testing.T) {
	reg := newTestRegistry(t)
	p1 := resolvedFor(t, reg, "Root")
	p2 := resolvedFor(t, reg, "Inbox")
	j := NewJournal()
	j.Push(p1)
	j.Push(p2)

	_, err := j.GoForward()
	require.ErrorIs(t, err, ErrEmptyJournal)

	_, err = j.GoBack()
	require.NoError(t, err)
	fwd, err := j.GoForward()
	require.NoError(t, err)
	require.Equal(t, p2, fwd)
}

func TestJournal_Previous(t *testing.T) {
	reg := newTestRegistry(t)
	j := NewJournal()
	j.Push(resolvedFor(t, reg, "Root"))

	_, err := j.Previous()
	require.ErrorIs(t, err, ErrEmptyJournal)

	j.Push(resolvedFor(t, reg, "Inbox"))
	prev, err := j.Previous()
	require.NoError(t, err)
	require.Equal(t, "Root", prev.Path.URI())
	require.Equal(t, 1, j.Cursor(), "Previous must not move the cursor")
}

func TestJournal_EntryMetadata(t *testing.T) {
	reg := newTestRegistry(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ids := []string{"first", "second"}
	j := NewJournal(
		WithClock(func() time.Time { return at }),
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}),
	)

	e1 := j.Push(resolvedFor(t, reg, "Root"))
	e2 := j.Push(resolvedFor(t, reg, "Inbox"))

	require.Equal(t, "first", e1.ID)
	require.Equal(t, uint64(1), e1.Sequence)
	require.Equal(t, "second", e2.ID)
	require.Equal(t, uint64(2), e2.Sequence)
	require.Equal(t, at, e2.At)
	cur, ok := j.Current()
	require.True(t, ok)
	require.Equal(t, e2, cur)
}

func TestJournal_DefaultIDsAreSequence(t *testing.T) {
	j := NewJournal()
	e := j.Push(resolvedFor(t, newTestRegistry(t), "Root"))
	require.Equal(t, "1", e.ID)
}

func TestJournal_Capacity(t *testing.T) {
	reg := newTestRegistry(t)
	j := NewJournal(WithCapacity(2))

	j.Push(resolvedFor(t, reg, "Root"))
	j.Push(resolvedFor(t, reg, "Inbox"))
	j.Push(resolvedFor(t, reg, "Settings"))

	require.Equal(t, 2, j.Len())
	require.Equal(t, 1, j.Cursor())
	require.Equal(t, "Inbox", j.Entries()[0].Path.URI())
}

func TestJournal_Clear(t *testing.T) {
	j := NewJournal()
	j.Push(resolvedFor(t, newTestRegistry(t), "Root"))

	j.Clear()

	require.Zero(t, j.Len())
	require.Equal(t, -1, j.Cursor())
}

func TestJournal_ConcurrentPush(t *testing.T) {
	reg := newTestRegistry(t)
	path := resolvedFor(t, reg, "Root")
	j := NewJournal()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.Push(path)
		}()
	}
	wg.Wait()

	require.Equal(t, 50, j.Len())
	entries := j.Entries()
	for i, e := range entries {
		require.Equal(t, uint64(i+1), e.Sequence)
	}
}

// TestJournal_PropertyBased_MatchesModel checks the journal against a simple
// slice-and-cursor model under random push/back/forward sequences.
func TestJournal_PropertyBased_MatchesModel(t *testing.T) {
	reg := newTestRegistry(t)
	names := []string{"Root", "LoginPage", "Inbox", "Settings", "Details"}
	paths := make([]ResolvedPath, len(names))
	for i, n := range names {
		paths[i] = resolvedFor(t, reg, n)
	}

	rapid.Check(t, func(t *rapid.T) {
		j := NewJournal()
		var model []ResolvedPath
		cursor := -1

		numOps := rapid.IntRange(1, 60).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				p := paths[rapid.IntRange(0, len(paths)-1).Draw(t, "path")]
				j.Push(p)
				model = append(model[:cursor+1], p)
				cursor = len(model) - 1
			case 1:
				got, err := j.GoBack()
				if cursor <= 0 {
					require.ErrorIs(t, err, ErrEmptyJournal)
					continue
				}
				cursor--
				require.NoError(t, err)
				require.Equal(t, model[cursor], got)
			case 2:
				got, err := j.GoForward()
				if cursor >= len(model)-1 {
					require.ErrorIs(t, err, ErrEmptyJournal)
					continue
				}
				cursor++
				require.NoError(t, err)
				require.Equal(t, model[cursor], got)
			}

			require.Equal(t, cursor, j.Cursor())
			require.Equal(t, len(model), j.Len())
			require.Equal(t, cursor > 0, j.CanGoBack())
		}
	})
}
