package fmu

import (
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/simtoolkit/fmuedit/internal/archive"
	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/internal/schema"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// Session is one editing session over a loaded FMU archive.
//
// It holds the original archive bytes (read again only at render time, never
// mutated in place), the value model, the retained document tree, and the
// ordered pending-removal list. A session assumes exactly one mutator;
// concurrent sessions over the same source are independent copies.
type Session struct {
	logger fmuedit.Logger
	path   string // source path, empty when loaded from bytes
	source []byte // original archive bytes
	doc    *etree.Document
	md     *model.ModelDescription

	// pending holds names staged for deletion, drained once per render.
	pending []string
}

// Load opens the FMU archive at path and parses its model description.
func Load(path string, logger fmuedit.Logger) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	session, err := NewSession(data, logger)
	if err != nil {
		return nil, err
	}
	session.path = path
	return session, nil
}

// NewSession parses an FMU archive held in memory into an editing session.
// Structural parse failures abort construction entirely; no partially
// initialized session is returned.
func NewSession(data []byte, logger fmuedit.Logger) (*Session, error) {
	store, err := archive.Open(data)
	if err != nil {
		return nil, err
	}

	descriptionXML, err := store.Read(fmuedit.ModelDescriptionMember)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(descriptionXML, fmuedit.ModelDescriptionMember)
	if err != nil {
		return nil, err
	}

	md, err := buildModel(doc, fmuedit.ModelDescriptionMember)
	if err != nil {
		return nil, err
	}

	session := &Session{
		logger: logger,
		source: data,
		doc:    doc,
		md:     md,
	}

	if err := session.checkConformance(); err != nil {
		return nil, err
	}

	logger.Verbose("parsed model description: model %q, %d scalar variables",
		md.ModelName, len(md.Variables))
	return session, nil
}

// Model returns the value model. Callers mutate it only through the session's
// mutation methods.
func (s *Session) Model() *model.ModelDescription {
	return s.md
}

// Path returns the source path of the archive, if the session was loaded
// from a file.
func (s *Session) Path() string {
	return s.path
}

// PendingRemovals returns a copy of the names staged for deletion.
func (s *Session) PendingRemovals() []string {
	pending := make([]string, len(s.pending))
	copy(pending, s.pending)
	return pending
}

// checkConformance runs the advisory schema check. Findings are logged and
// never block a structurally valid parse; only a crashed checker is raised.
func (s *Session) checkConformance() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schema conformance check crashed: %v", r)
		}
	}()

	result := schema.Check(s.md)
	if result.Valid {
		s.logger.Verbose("model description conforms to the FMI 2.0 schema shape")
		return nil
	}
	s.logger.Info("schema advisory for %q: %s", s.md.ModelName, result.ErrorString())
	return nil
}
