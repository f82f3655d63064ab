package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Go types standing in for application views and view models.
type (
	RootPage            struct{}
	RootPageViewModel   struct{}
	LoginPage           struct{}
	LoginPageViewModel  struct{}
	InboxPage           struct{}
	InboxPageViewModel  struct{}
	SettingsPage        struct{}
	DetailsPage         struct{}
	DetailsViewModel    struct{}
	ShellNavigationPage struct{}
	MainTabbedPage      struct{}
	OrphanViewModel     struct{}
)

var (
	rootKind     = ViewKindOf[RootPage](nil)
	rootVMKind   = ViewModelKindOf[RootPageViewModel]()
	loginKind    = ViewKindOf[LoginPage](nil)
	loginVMKind  = ViewModelKindOf[LoginPageViewModel]()
	inboxKind    = ViewKindOf[InboxPage](nil)
	inboxVMKind  = ViewModelKindOf[InboxPageViewModel]()
	settingsKind = ViewKindOf[SettingsPage](nil)
	detailsKind  = ViewKindOf[DetailsPage](nil)
	detailsVM    = ViewModelKindOf[DetailsViewModel]()
	shellNavKind = ViewKindOf[ShellNavigationPage](KindNavigationPage)
	tabsKind     = ViewKindOf[MainTabbedPage](KindTabbedPage)
	orphanVMKind = ViewModelKindOf[OrphanViewModel]()
)

// newTestRegistry returns a registry with a small application registered:
// Root, Login, Inbox, Settings, Details, ShellNavigationPage, MainTabbedPage.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(rootKind, rootVMKind, "Root"))
	require.NoError(t, reg.Register(loginKind, loginVMKind, ""))
	require.NoError(t, reg.Register(inboxKind, inboxVMKind, "Inbox"))
	require.NoError(t, reg.Register(settingsKind, nil, "Settings"))
	require.NoError(t, reg.Register(detailsKind, detailsVM, "Details"))
	require.NoError(t, reg.Register(shellNavKind, nil, ""))
	require.NoError(t, reg.Register(tabsKind, nil, ""))
	return reg
}

// recordingDispatcher records dispatched paths and completes them immediately.
type recordingDispatcher struct {
	paths []ResolvedPath
}

func (d *recordingDispatcher) Dispatch(_ context.Context, path ResolvedPath, callbacks ...Callback) *Navigation {
	d.paths = append(d.paths, path)
	nav := NewNavigation("test")
	NewCallbacks(callbacks...).Succeed()
	nav.Complete(nil)
	return nav
}
