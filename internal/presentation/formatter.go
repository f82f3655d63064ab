package presentation

import (
	"encoding/json"
	"io"
)

// Formatter writes indented JSON documents for the CLI.
type Formatter struct {
	enc *json.Encoder
}

// NewFormatter creates a formatter writing to w. URIs keep their literal
// '&' rather than the & escape.
func NewFormatter(w io.Writer) *Formatter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return &Formatter{enc: enc}
}

// FormatRegistrations writes registrations as a JSON array.
func (f *Formatter) FormatRegistrations(registrations []RegistrationDTO) error {
	return f.enc.Encode(registrations)
}

// FormatPath writes a path's structure.
func (f *Formatter) FormatPath(path PathDTO) error {
	return f.enc.Encode(path)
}

// FormatJournal writes journal entries oldest first.
func (f *Formatter) FormatJournal(entries []JournalEntryDTO) error {
	return f.enc.Encode(entries)
}
