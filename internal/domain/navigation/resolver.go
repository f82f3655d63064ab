package navigation

import (
	"fmt"
	"strings"
)

// Resolve checks p against registry and returns it with every view-model reference
// replaced by its registered name.
func Resolve(p Path, registry RegistryProvider) (ResolvedPath, error) {
	if len(p.nodes) == 0 {
		return ResolvedPath{}, ErrEmptyPath
	}

	nodes := make([]Node, 0, len(p.nodes))
	for i, n := range p.nodes {
		var (
			resolved Node
			err      error
		)
		switch node := n.(type) {
		case Segment:
			resolved, err = resolveSegment(node, registry)
		case TabGroup:
			resolved, err = resolveTabGroup(node, registry)
		default:
			err = fmt.Errorf("%w: unsupported node %T", ErrMalformedURI, n)
		}
		if err != nil {
			return ResolvedPath{}, fmt.Errorf("segment %d: %w", i, err)
		}
		nodes = append(nodes, resolved)
	}

	path := NewPath(p.absolute, nodes...)
	return ResolvedPath{path: path, uri: Compose(path)}, nil
}

func resolveSegment(s Segment, registry RegistryProvider) (Segment, error) {
	if s.name == "" && s.viewModel != nil {
		name, err := registry.LookupKeyByViewModel(s.viewModel)
		if err != nil {
			return Segment{}, err
		}
		s = s.withName(name)
	}
	if err := ValidateName(s.name); err != nil {
		return Segment{}, err
	}
	if _, ok := s.params[ParamUseModalNavigation]; ok {
		return Segment{}, fmt.Errorf("%w: %s on %q", ErrReservedParameter, ParamUseModalNavigation, s.name)
	}
	if !registry.Has(s.name) {
		return Segment{}, &UnregisteredDestinationError{Name: s.name}
	}
	return s, nil
}

func resolveTabGroup(g TabGroup, registry RegistryProvider) (TabGroup, error) {
	host, err := resolveSegment(g.host, registry)
	if err != nil {
		return TabGroup{}, fmt.Errorf("tab host: %w", err)
	}

	tabs := make([]Segment, 0, len(g.tabs))
	for _, tab := range g.tabs {
		if isAbsoluteName(tab.name) {
			return TabGroup{}, fmt.Errorf("%w: tab %q", ErrAbsoluteInTabGroup, tab.name)
		}
		resolved, err := resolveSegment(tab, registry)
		if err != nil {
			return TabGroup{}, fmt.Errorf("tab: %w", err)
		}
		tabs = append(tabs, resolved)
	}

	for _, name := range g.SelectedTabs() {
		if isAbsoluteName(name) {
			return TabGroup{}, fmt.Errorf("%w: selected tab %q", ErrAbsoluteInTabGroup, name)
		}
		if err := ValidateName(name); err != nil {
			return TabGroup{}, fmt.Errorf("selected tab: %w", err)
		}
		if !registry.Has(name) {
			return TabGroup{}, &UnregisteredDestinationError{Name: name}
		}
	}

	return NewTabGroup(host, tabs, g.selected), nil
}

func isAbsoluteName(name string) bool {
	return strings.HasPrefix(name, string(pathSeparator))
}
