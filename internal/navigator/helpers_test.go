package navigator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

type (
	HomePage     struct{}
	HomeVM       struct{}
	InboxPage    struct{}
	InboxVM      struct{}
	SettingsPage struct{}
	AppShell     struct{}
	AppTabs      struct{}
)

var (
	homeKind     = navigation.ViewKindOf[HomePage](nil)
	homeVMKind   = navigation.ViewModelKindOf[HomeVM]()
	inboxKind    = navigation.ViewKindOf[InboxPage](nil)
	inboxVMKind  = navigation.ViewModelKindOf[InboxVM]()
	settingsKind = navigation.ViewKindOf[SettingsPage](nil)
	shellKind    = navigation.ViewKindOf[AppShell](navigation.KindNavigationPage)
	appTabsKind  = navigation.ViewKindOf[AppTabs](navigation.KindTabbedPage)
)

// newSealedRegistry registers Home, Inbox, Settings, AppShell and AppTabs and seals the registry.
func newSealedRegistry(t *testing.T) *navigation.Registry {
	t.Helper()
	reg := navigation.NewRegistry()
	require.NoError(t, reg.Bootstrap(func(r *navigation.Registry) error {
		for _, d := range []struct {
			view, vm *navigation.Kind
			name     string
		}{
			{homeKind, homeVMKind, "Home"},
			{inboxKind, inboxVMKind, "Inbox"},
			{settingsKind, nil, "Settings"},
			{shellKind, nil, ""},
			{appTabsKind, nil, ""},
		} {
			if err := r.Register(d.view, d.vm, d.name); err != nil {
				return err
			}
		}
		return nil
	}))
	return reg
}

func mustResolve(t *testing.T, reg navigation.RegistryProvider, uri string) navigation.ResolvedPath {
	t.Helper()
	p, err := navigation.Parse(uri)
	require.NoError(t, err)
	resolved, err := navigation.Resolve(p, reg)
	require.NoError(t, err)
	return resolved
}

func waitFor(t *testing.T, nav *navigation.Navigation) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := nav.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded, "navigation %s did not finish", nav.ID())
	return err
}

// mockProvider is a testify mock of Provider.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Present(ctx context.Context, path navigation.ResolvedPath) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
