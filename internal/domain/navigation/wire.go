package navigation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Wire delimiters. None of them may appear in a destination name.
const (
	pathSeparator  = '/'
	queryMarker    = '?'
	tabsOpen       = '['
	tabsClose      = ']'
	tabDelimiter   = ','
	selectedMarker = '@'

	reservedNameChars = "/?&=[],@|#%"
)

// ValidateName checks that name can be used as a destination name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, reservedNameChars) || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Compose renders p in wire form.
func Compose(p Path) string {
	var sb strings.Builder
	if p.absolute {
		sb.WriteByte(pathSeparator)
	}
	for i, n := range p.nodes {
		if i > 0 {
			sb.WriteByte(pathSeparator)
		}
		switch node := n.(type) {
		case Segment:
			writeSegment(&sb, node)
		case TabGroup:
			writeSegment(&sb, node.host)
			sb.WriteByte(tabsOpen)
			for j, tab := range node.tabs {
				if j > 0 {
					sb.WriteByte(tabDelimiter)
				}
				writeSegment(&sb, tab)
			}
			sb.WriteByte(tabsClose)
			if node.selected != "" {
				sb.WriteByte(selectedMarker)
				sb.WriteString(node.selected)
			}
		}
	}
	return sb.String()
}

func writeSegment(sb *strings.Builder, s Segment) {
	sb.WriteString(s.name)
	if len(s.params) == 0 && !s.modal {
		return
	}
	values := make(url.Values, len(s.params)+1)
	for k, v := range s.params {
		values.Set(k, v)
	}
	if s.modal {
		values.Set(ParamUseModalNavigation, "true")
	}
	sb.WriteByte(queryMarker)
	// Encode sorts by key, which keeps the output deterministic.
	sb.WriteString(values.Encode())
}

// Parse reads a path from its wire form.
func Parse(uri string) (Path, error) {
	s := uri
	absolute := false
	if strings.HasPrefix(s, string(pathSeparator)) {
		absolute = true
		s = s[1:]
	}
	if s == "" {
		return Path{}, ErrEmptyPath
	}

	parts, err := splitTopLevel(s)
	if err != nil {
		return Path{}, fmt.Errorf("parse %q: %w", uri, err)
	}

	nodes := make([]Node, 0, len(parts))
	for _, part := range parts {
		n, err := parseNode(part)
		if err != nil {
			return Path{}, fmt.Errorf("parse %q: %w", uri, err)
		}
		nodes = append(nodes, n)
	}
	return NewPath(absolute, nodes...), nil
}

// splitTopLevel splits on path separators outside of tab brackets.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case tabsOpen:
			depth++
			if depth > 1 {
				return nil, fmt.Errorf("%w: nested tab group at offset %d", ErrMalformedURI, i)
			}
		case tabsClose:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced %q at offset %d", ErrMalformedURI, tabsClose, i)
			}
		case pathSeparator:
			// "@/Name" and "|/Name" keep the separator with the selection so
			// it is reported as absolute navigation inside the tab group.
			if depth == 0 && !inSelection(s, i) {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unterminated tab group", ErrMalformedURI)
	}
	parts = append(parts, s[start:])
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment", ErrMalformedURI)
		}
	}
	return parts, nil
}

func inSelection(s string, i int) bool {
	return i > 0 && (s[i-1] == selectedMarker || strings.HasPrefix(s[i-1:], TabSeparator))
}

func parseNode(part string) (Node, error) {
	open := strings.IndexByte(part, tabsOpen)
	if open < 0 {
		return parseSegment(part)
	}

	end := strings.IndexByte(part, tabsClose)
	host, err := parseSegment(part[:open])
	if err != nil {
		return nil, err
	}

	var tabs []Segment
	if inner := part[open+1 : end]; inner != "" {
		for _, raw := range strings.Split(inner, string(tabDelimiter)) {
			if strings.HasPrefix(raw, string(pathSeparator)) {
				return nil, fmt.Errorf("%w: tab %q", ErrAbsoluteInTabGroup, raw)
			}
			tab, err := parseSegment(raw)
			if err != nil {
				return nil, err
			}
			tabs = append(tabs, tab)
		}
	}

	var selected string
	if rest := part[end+1:]; rest != "" {
		if rest[0] != selectedMarker || len(rest) == 1 {
			return nil, fmt.Errorf("%w: unexpected %q after tab group", ErrMalformedURI, rest)
		}
		selected = rest[1:]
		for _, name := range strings.Split(selected, TabSeparator) {
			if strings.HasPrefix(name, string(pathSeparator)) {
				return nil, fmt.Errorf("%w: selected tab %q", ErrAbsoluteInTabGroup, name)
			}
			if err := ValidateName(name); err != nil {
				return nil, err
			}
		}
	}

	return NewTabGroup(host, tabs, selected), nil
}

func parseSegment(raw string) (Segment, error) {
	name, query, hasQuery := strings.Cut(raw, string(queryMarker))
	if err := ValidateName(name); err != nil {
		return Segment{}, err
	}
	if !hasQuery {
		return newSegment(name, nil, false, nil), nil
	}
	if query == "" {
		return Segment{}, fmt.Errorf("%w: empty query on %q", ErrMalformedURI, name)
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Segment{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}

	modal := false
	params := make(map[string]string, len(values))
	for k, vs := range values {
		v := vs[len(vs)-1]
		if k == ParamUseModalNavigation {
			modal, err = strconv.ParseBool(v)
			if err != nil {
				return Segment{}, fmt.Errorf("%w: %s=%q", ErrMalformedURI, k, v)
			}
			continue
		}
		params[k] = v
	}
	return newSegment(name, nil, modal, params), nil
}
