package navigator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

func TestStackHost_RelativeAndAbsolute(t *testing.T) {
	reg := newSealedRegistry(t)
	host := NewStackHost()
	ctx := context.Background()

	require.NoError(t, host.Present(ctx, mustResolve(t, reg, "Home")))
	require.NoError(t, host.Present(ctx, mustResolve(t, reg, "Inbox")))
	require.Equal(t, []string{"Home", "Inbox"}, host.Screens())

	require.NoError(t, host.Present(ctx, mustResolve(t, reg, "/AppShell/Settings")))
	require.Equal(t, []string{"AppShell", "Settings"}, host.Screens())

	require.NoError(t, host.PresentBack(ctx, mustResolve(t, reg, "Inbox")))
	require.Equal(t, []string{"Home", "Inbox"}, host.Screens())
	require.Equal(t, []string{"Home", "Inbox", "/AppShell/Settings", "<Inbox"}, host.Presented())
}

func TestStackHost_PresentBackWithoutHistory(t *testing.T) {
	host := NewStackHost()
	err := host.PresentBack(context.Background(), navigation.ResolvedPath{})
	require.ErrorContains(t, err, "nothing to undo")
}

func TestStackHost_FailOnTab(t *testing.T) {
	reg := newSealedRegistry(t)
	host := NewStackHost()
	denied := errors.New("denied")
	host.FailOn("Inbox", denied)

	err := host.Present(context.Background(), mustResolve(t, reg, "AppTabs[Home,Inbox]"))

	require.ErrorIs(t, err, denied)
	require.Empty(t, host.Screens())
	require.Empty(t, host.Presented())
}

func TestProviderFunc(t *testing.T) {
	called := false
	var p Provider = ProviderFunc(func(context.Context, navigation.ResolvedPath) error {
		called = true
		return nil
	})
	require.NoError(t, p.Present(context.Background(), navigation.ResolvedPath{}))
	require.True(t, called)
}
