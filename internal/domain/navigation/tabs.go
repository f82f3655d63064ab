package navigation

import (
	"fmt"
	"strings"
)

// TabGroupBuilder accumulates the tabs of a tab host. It is only reachable through
// Builder.AddTabbedSegment and Builder.AddTabbedSegmentNamed, so tab-only operations
// cannot be applied to a plain path.
type TabGroupBuilder struct {
	registry RegistryProvider
	host     []ConfigureSegment
	tabs     []Segment
	selected []string
	err      error
}

// ConfigureHost sets options on the tab host segment itself.
func (t *TabGroupBuilder) ConfigureHost(configure ...ConfigureSegment) *TabGroupBuilder {
	t.host = append(t.host, configure...)
	return t
}

// CreateTab adds a named tab.
func (t *TabGroupBuilder) CreateTab(name string, configure ...ConfigureSegment) *TabGroupBuilder {
	if t.err != nil {
		return t
	}
	t.tabs = append(t.tabs, buildSegment(name, nil, configure))
	return t
}

// CreateTabFor adds the tab registered for the view-model kind vm.
func (t *TabGroupBuilder) CreateTabFor(vm *Kind, configure ...ConfigureSegment) *TabGroupBuilder {
	if t.err != nil {
		return t
	}
	name, err := t.registry.LookupKeyByViewModel(vm)
	if err != nil {
		t.err = fmt.Errorf("create tab: %w", err)
		return t
	}
	return t.CreateTab(name, configure...)
}

// SelectTab marks the selected tab. Several names, or repeated calls, form a compound
// selection joined with TabSeparator.
func (t *TabGroupBuilder) SelectTab(names ...string) *TabGroupBuilder {
	if t.err != nil {
		return t
	}
	t.selected = append(t.selected, names...)
	return t
}

// SelectTabFor selects the tab registered for the view-model kind vm.
func (t *TabGroupBuilder) SelectTabFor(vm *Kind) *TabGroupBuilder {
	if t.err != nil {
		return t
	}
	name, err := t.registry.LookupKeyByViewModel(vm)
	if err != nil {
		t.err = fmt.Errorf("select tab: %w", err)
		return t
	}
	return t.SelectTab(name)
}

func (t *TabGroupBuilder) build(host string) (TabGroup, error) {
	if t.err != nil {
		return TabGroup{}, t.err
	}
	if isAbsoluteName(host) {
		return TabGroup{}, fmt.Errorf("%w: host %q", ErrAbsoluteInTabGroup, host)
	}
	for _, tab := range t.tabs {
		if isAbsoluteName(tab.name) {
			return TabGroup{}, fmt.Errorf("%w: tab %q", ErrAbsoluteInTabGroup, tab.name)
		}
	}
	return NewTabGroup(
		buildSegment(host, nil, t.host),
		t.tabs,
		strings.Join(t.selected, TabSeparator),
	), nil
}
