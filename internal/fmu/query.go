package fmu

import (
	"github.com/simtoolkit/fmuedit/internal/model"
)

// Query is a partial-match pattern over scalar variables. A variable matches
// when every populated field is exactly equal; zero-valued fields impose no
// constraint. The zero Query matches everything.
type Query struct {
	Name           string
	ValueReference *uint32
	Causality      *model.Causality
	Variability    *model.Variability
	Initial        *model.Initial
	DataType       *model.DataType
	Unit           string
	Description    string
	Start          any
}

func (q Query) matches(v *model.ScalarVariable) bool {
	if q.Name != "" && v.Name != q.Name {
		return false
	}
	if q.ValueReference != nil && (v.ValueReference == nil || *v.ValueReference != *q.ValueReference) {
		return false
	}
	if q.Causality != nil && (v.Causality == nil || *v.Causality != *q.Causality) {
		return false
	}
	if q.Variability != nil && (v.Variability == nil || *v.Variability != *q.Variability) {
		return false
	}
	if q.Initial != nil && (v.Initial == nil || *v.Initial != *q.Initial) {
		return false
	}
	if q.DataType != nil && v.DataType != *q.DataType {
		return false
	}
	if q.Unit != "" && (v.Unit == nil || *v.Unit != q.Unit) {
		return false
	}
	if q.Description != "" && (v.Description == nil || *v.Description != q.Description) {
		return false
	}
	if q.Start != nil && v.Start != q.Start {
		return false
	}
	return true
}

// Query returns all scalar variables matching the pattern, in document order.
// Nothing matching yields an empty slice, never an error.
func (s *Session) Query(q Query) []*model.ScalarVariable {
	matched := make([]*model.ScalarVariable, 0, len(s.md.Variables))
	for _, variable := range s.md.Variables {
		if q.matches(variable) {
			matched = append(matched, variable)
		}
	}
	return matched
}

// GetByName resolves a variable by exact name. Zero matches and ambiguous
// names (2+ variables sharing the name) both yield not-found; ambiguity is a
// diagnostic, not an error.
func (s *Session) GetByName(name string) (*model.ScalarVariable, bool) {
	matched := s.Query(Query{Name: name})
	switch len(matched) {
	case 1:
		return matched[0], true
	case 0:
		s.logger.Verbose("no variable named %q", name)
		return nil, false
	default:
		s.logger.Verbose("%d variables share the name %q; treating as unresolvable", len(matched), name)
		return nil, false
	}
}
