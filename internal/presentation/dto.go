package presentation

import (
	"time"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
)

// RegistrationDTO represents a destination registration for presentation
type RegistrationDTO struct {
	Name      string   `json:"name"`
	View      string   `json:"view"`
	ViewModel string   `json:"view_model,omitempty"`
	Kinds     []string `json:"kinds"` // view kind followed by its bases
}

// NodeDTO is one segment or tab group of a path.
type NodeDTO struct {
	Type       string            `json:"type"` // "segment" or "tabs"
	Name       string            `json:"name"`
	Modal      bool              `json:"modal,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Tabs       []NodeDTO         `json:"tabs,omitempty"`
	Selected   []string          `json:"selected,omitempty"`
}

// PathDTO represents a path and its wire form.
type PathDTO struct {
	URI      string    `json:"uri"`
	Absolute bool      `json:"absolute"`
	Nodes    []NodeDTO `json:"nodes"`
}

// JournalEntryDTO represents one journal entry.
type JournalEntryDTO struct {
	ID       string    `json:"id"`
	Sequence uint64    `json:"sequence"`
	URI      string    `json:"uri"`
	At       time.Time `json:"at"`
	Current  bool      `json:"current"`
}

// FromDomainRegistration converts a domain registration to a DTO
func FromDomainRegistration(reg *navigation.Registration) RegistrationDTO {
	var kinds []string
	for k := reg.View(); k != nil; k = k.Base() {
		kinds = append(kinds, k.Name())
	}
	dto := RegistrationDTO{
		Name:  reg.Name(),
		View:  reg.View().Name(),
		Kinds: kinds,
	}
	if vm := reg.ViewModel(); vm != nil {
		dto.ViewModel = vm.Name()
	}
	return dto
}

// FromDomainRegistrations converts a slice of domain registrations to DTOs
func FromDomainRegistrations(regs []*navigation.Registration) []RegistrationDTO {
	dtos := make([]RegistrationDTO, len(regs))
	for i, reg := range regs {
		dtos[i] = FromDomainRegistration(reg)
	}
	return dtos
}

// FromSegment converts a segment to a DTO.
func FromSegment(s navigation.Segment) NodeDTO {
	return NodeDTO{
		Type:       "segment",
		Name:       s.Name(),
		Modal:      s.IsModal(),
		Parameters: s.Parameters(),
	}
}

// FromPath converts a path to a DTO.
func FromPath(p navigation.Path) PathDTO {
	nodes := make([]NodeDTO, 0, p.Len())
	for _, node := range p.Nodes() {
		switch n := node.(type) {
		case navigation.Segment:
			nodes = append(nodes, FromSegment(n))
		case navigation.TabGroup:
			dto := FromSegment(n.Host())
			dto.Type = "tabs"
			for _, tab := range n.Tabs() {
				dto.Tabs = append(dto.Tabs, FromSegment(tab))
			}
			dto.Selected = n.SelectedTabs()
			nodes = append(nodes, dto)
		}
	}
	return PathDTO{
		URI:      navigation.Compose(p),
		Absolute: p.Absolute(),
		Nodes:    nodes,
	}
}

// FromJournal converts journal entries to DTOs, marking the entry at cursor.
func FromJournal(entries []navigation.JournalEntry, cursor int) []JournalEntryDTO {
	dtos := make([]JournalEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = JournalEntryDTO{
			ID:       e.ID,
			Sequence: e.Sequence,
			URI:      e.Path.URI(),
			At:       e.At,
			Current:  i == cursor,
		}
	}
	return dtos
}
