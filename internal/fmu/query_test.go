package fmu

import (
	"testing"

	"github.com/simtoolkit/fmuedit/internal/model"
)

func TestQuery_EmptyPatternReturnsAllInOrder(t *testing.T) {
	session := testSession(t)

	all := session.Query(Query{})
	if len(all) != len(session.Model().Variables) {
		t.Fatalf("Query(empty) returned %d variables, want %d", len(all), len(session.Model().Variables))
	}
	for i, variable := range session.Model().Variables {
		if all[i] != variable {
			t.Errorf("Query(empty)[%d] out of document order", i)
		}
	}
}

func TestQuery_SampleScenario(t *testing.T) {
	session := largeSession(t)

	if got := len(session.Query(Query{})); got != 179 {
		t.Errorf("Query(empty) = %d variables, want 179", got)
	}

	input := model.CausalityInput
	if got := len(session.Query(Query{Causality: &input})); got != 3 {
		t.Errorf("Query(causality=input) = %d variables, want 3", got)
	}

	output := model.CausalityOutput
	if got := len(session.Query(Query{Causality: &output})); got != 4 {
		t.Errorf("Query(causality=output) = %d variables, want 4", got)
	}

	byName := session.Query(Query{Name: "xCyl"})
	if len(byName) != 1 || byName[0].Name != "xCyl" {
		t.Errorf("Query(name=xCyl) = %d variables, want exactly 1 named xCyl", len(byName))
	}
}

func TestQuery_NoMatchReturnsEmpty(t *testing.T) {
	session := testSession(t)

	matched := session.Query(Query{Name: "invalid_name"})
	if matched == nil {
		t.Fatal("Query must return an empty slice, not nil")
	}
	if len(matched) != 0 {
		t.Errorf("Query(name=invalid_name) = %d variables, want 0", len(matched))
	}
}

func TestQuery_AndOfSpecifiedFields(t *testing.T) {
	session := testSession(t)

	parameter := model.CausalityParameter
	real := model.TypeReal

	// Both constraints must hold: only pRated is a real-typed parameter.
	matched := session.Query(Query{Causality: &parameter, DataType: &real})
	if len(matched) != 1 || matched[0].Name != "pRated" {
		t.Errorf("Query(parameter AND real) = %v, want [pRated]", names(matched))
	}

	// Unit alone.
	matched = session.Query(Query{Unit: "bar"})
	if len(matched) != 1 || matched[0].Name != "pRated" {
		t.Errorf("Query(unit=bar) = %v, want [pRated]", names(matched))
	}

	// Mismatching combination yields nothing.
	input := model.CausalityInput
	matched = session.Query(Query{Causality: &input, Unit: "bar"})
	if len(matched) != 0 {
		t.Errorf("Query(input AND unit=bar) = %v, want none", names(matched))
	}
}

func TestQuery_ByStartValue(t *testing.T) {
	session := testSession(t)

	matched := session.Query(Query{Start: "idle"})
	if len(matched) != 1 || matched[0].Name != "mode" {
		t.Errorf("Query(start=idle) = %v, want [mode]", names(matched))
	}
}

func TestGetByName_Unique(t *testing.T) {
	session := testSession(t)

	variable, ok := session.GetByName("xCyl")
	if !ok {
		t.Fatal("Expected xCyl to resolve")
	}
	if variable.Name != "xCyl" {
		t.Errorf("GetByName returned %q", variable.Name)
	}
}

func TestGetByName_Missing(t *testing.T) {
	session := testSession(t)

	if _, ok := session.GetByName("invalid name"); ok {
		t.Error("Expected absent result for unknown name")
	}
}

func TestGetByName_AmbiguousNameIsAbsent(t *testing.T) {
	session := testSession(t)

	if _, ok := session.GetByName("dupSensor"); ok {
		t.Error("Expected absent result for a name shared by two variables")
	}
}

func names(variables []*model.ScalarVariable) []string {
	out := make([]string, len(variables))
	for i, v := range variables {
		out[i] = v.Name
	}
	return out
}
