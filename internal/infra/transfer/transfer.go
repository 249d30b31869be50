// Package transfer reads and writes the whole schedule as a YAML document,
// for backups and for moving data between stores.
package transfer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/editflow/internal/domain"
)

// FormatVersion is written to every exported document.
const FormatVersion = 1

// ErrUnsupportedVersion is returned for documents written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported schedule document version")

// Document is the YAML layout of an exported schedule.
// Fields are ordered to minimize memory padding.
type Document struct {
	ExportedAt string            `yaml:"exportedAt,omitempty"`
	Programs   []*domain.Program `yaml:"programs"`
	Editors    []*domain.Editor  `yaml:"editors"`
	Tasks      []*domain.Task    `yaml:"tasks"`
	Version    int               `yaml:"version"`
}

// FromSnapshot builds a document from a snapshot.
func FromSnapshot(snap domain.Snapshot, exportedAt string) *Document {
	return &Document{
		Version:    FormatVersion,
		ExportedAt: exportedAt,
		Programs:   snap.Programs,
		Editors:    snap.Editors,
		Tasks:      snap.Tasks,
	}
}

// Encode writes the document as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML document. Unknown fields are rejected so typos don't silently drop data.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{Version: FormatVersion}, nil
		}
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = FormatVersion
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return &doc, nil
}
