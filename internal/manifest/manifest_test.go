package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

const mailManifest = `
kinds:
  - name: MailShell
    base: NavigationPage
destinations:
  - view: MailShell
  - view: MailTabs
    base: TabbedPage
  - name: Inbox
    view: InboxPage
    view_model: InboxViewModel
  - name: Compose
    view: ComposePage
    view_model: ComposeViewModel
  - view: SettingsPage
`

func TestParse_AndApply(t *testing.T) {
	m, err := Parse([]byte(mailManifest))
	require.NoError(t, err)

	reg := navigation.NewRegistry()
	require.NoError(t, m.Apply(reg))
	require.True(t, reg.Sealed())
	require.Equal(t, 5, reg.Len())

	names := make([]string, 0, reg.Len())
	for _, r := range reg.List() {
		names = append(names, r.Name())
	}
	require.Equal(t, []string{"MailShell", "MailTabs", "Inbox", "Compose", "SettingsPage"}, names)

	vm, ok := m.Kind("InboxViewModel")
	require.True(t, ok)
	name, err := reg.LookupKeyByViewModel(vm)
	require.NoError(t, err)
	require.Equal(t, "Inbox", name)

	navPages := reg.ViewsOfKind(navigation.KindNavigationPage)
	require.Len(t, navPages, 1)
	require.Equal(t, "MailShell", navPages[0].Name())

	resolved, err := navigation.NewBuilder(reg, nil).
		AddNavigationPage().
		AddTabbedSegment(func(tb *navigation.TabGroupBuilder) {
			tb.CreateTabFor(vm).CreateTab("Compose").SelectTab("Inbox")
		}).
		Build()
	require.NoError(t, err)
	require.Equal(t, "MailShell/MailTabs[Inbox,Compose]@Inbox", resolved.URI())
}

func TestApply_OnlyOnce(t *testing.T) {
	m, err := Parse([]byte(mailManifest))
	require.NoError(t, err)
	reg := navigation.NewRegistry()

	require.NoError(t, m.Apply(reg))
	require.NoError(t, m.Apply(reg), "a second bootstrap returns the first result")
	require.Equal(t, 5, reg.Len())
	require.ErrorIs(t, m.Register(reg), navigation.ErrRegistrySealed)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"invalid yaml", "destinations: [", "parse manifest"},
		{"empty", "kinds: []", "no destinations"},
		{"missing view", "destinations:\n  - name: X\n", "view is required"},
		{"unknown base", "destinations:\n  - view: A\n    base: Nope\n", `unknown base kind "Nope"`},
		{"unnamed kind", "kinds:\n  - base: Page\ndestinations:\n  - view: A\n", "name is required"},
		{"shadow builtin", "kinds:\n  - name: Page\ndestinations:\n  - view: A\n", "shadows a built-in"},
		{"conflicting bases", "destinations:\n  - view: A\n    base: TabbedPage\n  - view: A\n    name: B\n", "declared with bases"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApply_ViewUsedAsViewModel(t *testing.T) {
	m, err := Parse([]byte(`
destinations:
  - view: LoginPage
  - name: Broken
    view: OtherPage
    view_model: LoginPage
`))
	require.NoError(t, err)

	err = m.Apply(navigation.NewRegistry())

	require.ErrorIs(t, err, navigation.ErrMvvmPatternBreak)
	require.ErrorContains(t, err, "destination 1 (OtherPage)")
}

func TestApply_LastWriteWins(t *testing.T) {
	m, err := Parse([]byte(`
destinations:
  - name: Home
    view: OldHome
  - name: Home
    view: NewHome
`))
	require.NoError(t, err)
	reg := navigation.NewRegistry()
	require.NoError(t, m.Apply(reg))

	r, err := reg.Get("Home")
	require.NoError(t, err)
	require.Equal(t, "NewHome", r.View().Name())
	require.Equal(t, 1, reg.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mailManifest), 0o600))

	m, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, m.Destinations(), 5)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read manifest")
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"apps/mail.yaml": {Data: []byte(mailManifest)},
		"apps/bad.yaml":  {Data: []byte("destinations: {}")},
	}

	m, err := LoadFS(fsys, "apps/mail.yaml")
	require.NoError(t, err)
	_, ok := m.Kind("MailShell")
	require.True(t, ok)

	_, err = LoadFS(fsys, "apps/bad.yaml")
	require.ErrorContains(t, err, "apps/bad.yaml")
}
