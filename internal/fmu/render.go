package fmu

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/simtoolkit/fmuedit/internal/archive"
	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// Render produces a complete new archive: the pending-removal list is
// drained into the document tree, every live variable's set fields are
// written back onto its node, the tree is serialized, and the archive is
// rebuilt with only the model description member replaced.
//
// Rendering twice without intervening mutations yields byte-identical
// archives.
func (s *Session) Render() ([]byte, error) {
	if err := s.drainPending(); err != nil {
		return nil, err
	}
	if err := s.writeBack(); err != nil {
		return nil, err
	}

	descriptionXML, err := s.serializeDescription()
	if err != nil {
		return nil, err
	}

	return archive.Replace(s.source, fmuedit.ModelDescriptionMember, descriptionXML)
}

// SaveCopy renders the session and writes the new archive into dirPath.
// An empty fileName takes the source archive's base name; the .fmu suffix is
// enforced either way. The write is atomic: content goes to a temporary file
// that is renamed into place, so a failed render never leaves a partial
// archive on disk.
func (s *Session) SaveCopy(dirPath, fileName string) (string, error) {
	if fileName == "" {
		if s.path == "" {
			return "", fmt.Errorf("no file name given and session has no source path")
		}
		fileName = filepath.Base(s.path)
	}
	if !strings.HasSuffix(fileName, fmuedit.ArchiveSuffix) {
		fileName += fmuedit.ArchiveSuffix
	}

	data, err := s.Render()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dirPath, err)
	}

	target := filepath.Join(dirPath, fileName)
	tmp, err := os.CreateTemp(dirPath, ".fmuedit-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file in %s: %w", dirPath, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("renaming into place: %w", err)
	}

	s.logger.Info("new fmu generated: %s", target)
	return target, nil
}

// drainPending detaches every staged variable node from the retained tree
// and clears the pending list. Drain order is irrelevant, the staged names
// are disjoint.
func (s *Session) drainPending() error {
	for _, name := range s.pending {
		element := s.findVariableElement(name)
		if element == nil {
			return newDescriptionError(fmuedit.ErrMalformedDescription, fmuedit.ModelDescriptionMember, scalarVariableTag,
				fmt.Sprintf("staged variable %q has no node in the document tree", name), "")
		}
		element.Parent().RemoveChild(element)
	}
	s.pending = nil
	return nil
}

// writeBack reconciles the value model into the retained tree. Only fields
// currently set on a variable are written; the rest of the node is left
// exactly as the source document had it.
//
// Variables and tree nodes are paired by position, not by name: names need
// not be unique, and after drainPending both sequences hold the surviving
// variables in document order.
func (s *Session) writeBack() error {
	variables := s.doc.Root().SelectElement(modelVariablesTag)
	if variables == nil {
		return newDescriptionError(fmuedit.ErrMalformedDescription, fmuedit.ModelDescriptionMember, modelVariablesTag,
			"ModelVariables section vanished from the document tree", "")
	}
	elements := variables.SelectElements(scalarVariableTag)
	if len(elements) != len(s.md.Variables) {
		return newDescriptionError(fmuedit.ErrMalformedDescription, fmuedit.ModelDescriptionMember, modelVariablesTag,
			fmt.Sprintf("document tree holds %d ScalarVariable nodes, model holds %d", len(elements), len(s.md.Variables)), "")
	}

	for i, variable := range s.md.Variables {
		element := elements[i]
		if element.SelectAttrValue("name", "") != variable.Name {
			return newDescriptionError(fmuedit.ErrMalformedDescription, fmuedit.ModelDescriptionMember, scalarVariableTag,
				fmt.Sprintf("variable %q is out of step with its document node %q",
					variable.Name, element.SelectAttrValue("name", "")), "")
		}

		if variable.Causality != nil {
			element.CreateAttr("causality", variable.Causality.String())
		}
		if variable.Variability != nil {
			element.CreateAttr("variability", variable.Variability.String())
		}
		if variable.Initial != nil {
			element.CreateAttr("initial", variable.Initial.String())
		}
		if variable.Unit != nil {
			element.CreateAttr("unit", *variable.Unit)
		}
		if variable.Description != nil {
			element.CreateAttr("description", *variable.Description)
		}
		if variable.ValueReference != nil {
			element.CreateAttr("valueReference", strconv.FormatUint(uint64(*variable.ValueReference), 10))
		}

		children := element.ChildElements()
		if len(children) == 0 {
			return newDescriptionError(fmuedit.ErrMalformedDescription, fmuedit.ModelDescriptionMember, scalarVariableTag,
				fmt.Sprintf("variable %q lost its value element", variable.Name), "")
		}
		valueElement := children[0]
		valueElement.Tag = variable.DataType.Tag()
		if variable.Start != nil {
			valueElement.CreateAttr("start", model.FormatStart(variable.Start))
		}
	}
	return nil
}

// serializeDescription renders the retained tree to canonical bytes: UTF-8
// with a standard XML declaration.
func (s *Session) serializeDescription() ([]byte, error) {
	s.ensureDeclaration()
	data, err := s.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing model description: %w", err)
	}
	return data, nil
}

// ensureDeclaration prepends an XML declaration when the source document
// carried none.
func (s *Session) ensureDeclaration() {
	for _, child := range s.doc.Child {
		if pi, ok := child.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	pi := s.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	s.doc.RemoveChild(pi)
	s.doc.InsertChildAt(0, pi)
}

// findVariableElement locates the ScalarVariable node with the given name
// attribute. Only drainPending resolves by name: Remove requires unique
// resolution, so a staged name has exactly one node. Names may contain
// characters that break path expressions, so the lookup iterates rather than
// using etree paths.
func (s *Session) findVariableElement(name string) *etree.Element {
	variables := s.doc.Root().SelectElement(modelVariablesTag)
	if variables == nil {
		return nil
	}
	for _, element := range variables.SelectElements(scalarVariableTag) {
		if element.SelectAttrValue("name", "") == name {
			return element
		}
	}
	return nil
}
