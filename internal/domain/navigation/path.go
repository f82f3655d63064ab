package navigation

import (
	"slices"
	"strings"
)

// TabSeparator joins the names of a compound tab selection.
const TabSeparator = "|"

// Node is an element of a Path: a Segment or a TabGroup.
type Node interface {
	node()
}

func (Segment) node()  {}
func (TabGroup) node() {}

// TabGroup is a tab host segment with its child tabs and the selected tab.
type TabGroup struct {
	host     Segment
	tabs     []Segment
	selected string
}

// NewTabGroup creates a tab group. Multiple selected names are joined with TabSeparator.
func NewTabGroup(host Segment, tabs []Segment, selected ...string) TabGroup {
	var children []Segment
	if len(tabs) > 0 {
		children = slices.Clone(tabs)
	}
	return TabGroup{
		host:     host,
		tabs:     children,
		selected: strings.Join(selected, TabSeparator),
	}
}

// Host returns the tab host segment.
func (g TabGroup) Host() Segment {
	return g.host
}

// Tabs returns the child tabs in creation order.
func (g TabGroup) Tabs() []Segment {
	return slices.Clone(g.tabs)
}

// Selected returns the selected tab key; "" when no tab is selected.
func (g TabGroup) Selected() string {
	return g.selected
}

// SelectedTabs splits a compound selection into its names.
func (g TabGroup) SelectedTabs() []string {
	if g.selected == "" {
		return nil
	}
	return strings.Split(g.selected, TabSeparator)
}

// Path is an ordered sequence of nodes. An absolute path replaces the existing
// navigation stack instead of pushing onto it.
type Path struct {
	absolute bool
	nodes    []Node
}

// NewPath creates a path from nodes.
func NewPath(absolute bool, nodes ...Node) Path {
	var copied []Node
	if len(nodes) > 0 {
		copied = slices.Clone(nodes)
	}
	return Path{absolute: absolute, nodes: copied}
}

// Absolute reports whether the path resets the navigation stack.
func (p Path) Absolute() bool {
	return p.absolute
}

// Nodes returns the nodes in navigation order.
func (p Path) Nodes() []Node {
	return slices.Clone(p.nodes)
}

// Len returns the number of nodes.
func (p Path) Len() int {
	return len(p.nodes)
}

// String returns the wire form of the path.
func (p Path) String() string {
	return Compose(p)
}

// ResolvedPath is a path whose names have all been checked against a registry.
type ResolvedPath struct {
	path Path
	uri  string
}

// Path returns the resolved path.
func (r ResolvedPath) Path() Path {
	return r.path
}

// URI returns the wire form of the path.
func (r ResolvedPath) URI() string {
	return r.uri
}

// IsZero reports whether r is the zero value.
func (r ResolvedPath) IsZero() bool {
	return r.uri == "" && len(r.path.nodes) == 0
}

func (r ResolvedPath) String() string {
	return r.uri
}
