package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type pointerPage struct{}

type listPage[T any] struct{ items []T }

func TestViewKindOf_Interned(t *testing.T) {
	require.Same(t, rootKind, ViewKindOf[RootPage](nil))
	require.Equal(t, "RootPage", rootKind.Name())
	require.True(t, rootKind.IsVisual())
	require.Same(t, KindPage, rootKind.Base())
}

func TestViewKindOf_PointerUsesElemName(t *testing.T) {
	k := ViewKindOf[*pointerPage](nil)
	require.Equal(t, "pointerPage", k.Name())
}

func TestViewKindOf_GenericDropsTypeArguments(t *testing.T) {
	k := ViewKindOf[listPage[int]](nil)
	require.Equal(t, "listPage", k.Name())

	reg := NewRegistry()
	require.NoError(t, reg.Register(k, nil, ""))
	require.True(t, reg.Has("listPage"))
}

func TestViewKindOf_AnonymousNeedsExplicitName(t *testing.T) {
	k := ViewKindOf[struct{ anonymousPage bool }](nil)
	require.Empty(t, k.Name())

	reg := NewRegistry()
	require.ErrorIs(t, reg.Register(k, nil, ""), ErrInvalidName)
	require.NoError(t, reg.Register(k, nil, "Anonymous"))
	require.True(t, reg.Has("Anonymous"))
}

func TestViewModelKindOf(t *testing.T) {
	require.Same(t, rootVMKind, ViewModelKindOf[RootPageViewModel]())
	require.False(t, rootVMKind.IsVisual())
	require.Nil(t, rootVMKind.Base())
}

func TestKind_Is(t *testing.T) {
	tests := []struct {
		name  string
		kind  *Kind
		other *Kind
		want  bool
	}{
		{"self", shellNavKind, shellNavKind, true},
		{"direct base", shellNavKind, KindNavigationPage, true},
		{"ancestor", shellNavKind, KindVisualElement, true},
		{"sibling", shellNavKind, KindTabbedPage, false},
		{"view model", rootVMKind, KindVisualElement, false},
		{"nil other", rootKind, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.Is(tt.other))
		})
	}
}

func TestKind_NilSafe(t *testing.T) {
	var k *Kind
	require.Equal(t, "", k.Name())
	require.Nil(t, k.Base())
	require.False(t, k.IsVisual())
	require.False(t, k.Is(KindPage))
}

func TestBuiltinKinds(t *testing.T) {
	kinds := BuiltinKinds()
	require.Same(t, KindNavigationPage, kinds["NavigationPage"])
	require.Same(t, KindTabbedPage, kinds["TabbedPage"])
	require.Len(t, kinds, 5)
}

func TestNewViewKind_DefaultBase(t *testing.T) {
	k := NewViewKind("Custom", nil)
	require.True(t, k.Is(KindPage))
	require.Equal(t, "Custom", k.String())
}
