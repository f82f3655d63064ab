package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_ViewModelReferences(t *testing.T) {
	reg := newTestRegistry(t)
	path := NewPath(true,
		SegmentFor(rootVMKind),
		NewTabGroup(NewSegment("MainTabbedPage"), []Segment{SegmentFor(inboxVMKind), NewSegment("Settings")}, "Inbox"),
	)

	resolved, err := Resolve(path, reg)

	require.NoError(t, err)
	require.Equal(t, "/Root/MainTabbedPage[Inbox,Settings]@Inbox", resolved.URI())

	// the resolved path is exactly what its URI parses back into
	parsed, err := Parse(resolved.URI())
	require.NoError(t, err)
	require.Equal(t, resolved.Path(), parsed)
}

func TestResolve_Empty(t *testing.T) {
	_, err := Resolve(Path{}, newTestRegistry(t))
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestResolve_UnknownViewModel(t *testing.T) {
	_, err := Resolve(NewPath(false, SegmentFor(orphanVMKind)), newTestRegistry(t))

	var unreg *UnregisteredDestinationError
	require.True(t, errors.As(err, &unreg))
	require.True(t, unreg.ViewModel)
}

func TestResolve_ViewKindAsViewModel(t *testing.T) {
	_, err := Resolve(NewPath(false, SegmentFor(loginKind)), newTestRegistry(t))
	require.ErrorIs(t, err, ErrMvvmPatternBreak)
}

func TestResolve_AbsoluteNameInsideTabGroup(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		group TabGroup
	}{
		{"tab", NewTabGroup(NewSegment("MainTabbedPage"), []Segment{NewSegment("/Root")})},
		{"selection", NewTabGroup(NewSegment("MainTabbedPage"), []Segment{NewSegment("Root")}, "/Root")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(NewPath(false, tt.group), reg)
			require.ErrorIs(t, err, ErrAbsoluteInTabGroup)
		})
	}
}

func TestResolve_UnregisteredTabHost(t *testing.T) {
	_, err := Resolve(NewPath(false, NewTabGroup(NewSegment("Ghost"), nil)), newTestRegistry(t))
	require.ErrorIs(t, err, ErrUnregisteredDestination)
}

func TestResolve_ParsedURI(t *testing.T) {
	reg := newTestRegistry(t)
	parsed, err := Parse("ShellNavigationPage/Details?id=3")
	require.NoError(t, err)

	resolved, err := Resolve(parsed, reg)

	require.NoError(t, err)
	require.Equal(t, "ShellNavigationPage/Details?id=3", resolved.URI())
	require.False(t, resolved.IsZero())
	require.True(t, ResolvedPath{}.IsZero())
}
