// Package navigation implements the domain layer for composed navigation.
//
// This package follows the same rules as the other domain packages:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the navigation types (Kind, Registration, Segment, TabGroup, Path, JournalEntry)
//   - Implements domain logic (name resolution, wire compose/parse, back-stack truncation)
//   - Has no knowledge of infrastructure concerns (logging, tracing, YAML, view hosting)
//
// # Core Types
//
// Registry maps a destination name to the view kind (and optional view-model kind) used to
// build it. Registrations are made once at bootstrap; Bootstrap seals the registry so that
// later reads need no locking.
//
// Builder is the fluent path accumulator returned by the navigator service. It hands out a
// TabGroupBuilder for tab hosts and a SegmentBuilder for per-step options. Each builder only
// exposes the operations that are legal for its role.
//
// Resolve turns a Path into a ResolvedPath: view-model references are replaced by their
// registered names and every name is checked against the registry.
//
// Journal is the per-scope back-stack of resolved paths with a cursor.
//
// # Wire Form
//
// Paths serialize to a compact URI:
//
//	/Shell/MainTabs[Home,Inbox?unread=true,Settings]@Inbox/Details?id=42&useModalNavigation=true
//
// A leading "/" marks an absolute path. A tab group lists its tabs in brackets after the
// host segment and marks the selected tab with "@". Several selected tabs are joined with "|".
// Parse(Compose(p)) returns p for every well-formed path.
package navigation
