package fmu

import (
	"fmt"

	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// FieldSet names the variable fields a single mutation call may rewrite.
// Nil fields are left untouched. Start uses the same typed representation as
// the model; the caller is trusted to match the variable's data type.
type FieldSet struct {
	Causality      *model.Causality
	Initial        *model.Initial
	DataType       *model.DataType
	ValueReference *uint32
	Unit           *string
	Description    *string
	Start          any
}

// SetFields applies a batch of field edits to the named variable.
//
// The call is all-or-nothing: every requested field is validated before any
// is applied, so a rejected call leaves the session unchanged. A field may
// only be set when the source document already declared it; the serializer
// rewrites existing attributes and tags, it never synthesizes structure.
// Changing the data type away from the parsed one is rejected outright.
func (s *Session) SetFields(name string, set FieldSet) error {
	variable, ok := s.GetByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", fmuedit.ErrVariableNotFound, name)
	}

	// Validation pass. Nothing is applied until every field checks out.
	if set.Causality != nil && variable.Causality == nil {
		return s.fieldNotDeclared(name, "causality")
	}
	if set.Initial != nil && variable.Initial == nil {
		return s.fieldNotDeclared(name, "initial")
	}
	if set.Unit != nil && variable.Unit == nil {
		return s.fieldNotDeclared(name, "unit")
	}
	if set.Description != nil && variable.Description == nil {
		return s.fieldNotDeclared(name, "description")
	}
	if set.ValueReference != nil && variable.ValueReference == nil {
		return s.fieldNotDeclared(name, "valueReference")
	}
	if set.Start != nil && variable.Start == nil {
		return s.fieldNotDeclared(name, "start")
	}
	if set.DataType != nil && *set.DataType != variable.DataType {
		return fmt.Errorf("%w: variable %q is declared %s, cannot retype to %s",
			fmuedit.ErrDataTypeConflict, name, variable.DataType, *set.DataType)
	}

	// Apply pass.
	if set.Causality != nil {
		causality := *set.Causality
		variable.Causality = &causality
	}
	if set.Initial != nil {
		initial := *set.Initial
		variable.Initial = &initial
	}
	if set.Unit != nil {
		unit := *set.Unit
		variable.Unit = &unit
	}
	if set.Description != nil {
		description := *set.Description
		variable.Description = &description
	}
	if set.ValueReference != nil {
		ref := *set.ValueReference
		variable.ValueReference = &ref
	}
	if set.Start != nil {
		variable.Start = set.Start
	}

	s.logger.Verbose("updated variable %q", name)
	return nil
}

// SetStartValue is sugar over SetFields for the start field only.
func (s *Session) SetStartValue(name string, value any) error {
	return s.SetFields(name, FieldSet{Start: value})
}

// Remove deletes the named variable from the live collection and stages its
// document node for removal at render time. Ambiguous and unknown names both
// fail with ErrVariableNotFound.
func (s *Session) Remove(name string) error {
	variable, ok := s.GetByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", fmuedit.ErrVariableNotFound, name)
	}

	for i, candidate := range s.md.Variables {
		if candidate == variable {
			s.md.Variables = append(s.md.Variables[:i], s.md.Variables[i+1:]...)
			break
		}
	}
	s.pending = append(s.pending, name)

	s.logger.Verbose("staged removal of variable %q", name)
	return nil
}

func (s *Session) fieldNotDeclared(name, field string) error {
	return fmt.Errorf("%w: %s of variable %q", fmuedit.ErrFieldNotDeclared, field, name)
}
