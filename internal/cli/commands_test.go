package cli

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simtoolkit/fmuedit/internal/fmu"
	"github.com/simtoolkit/fmuedit/internal/logging"
	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

const cliFixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<fmiModelDescription fmiVersion="2.0" modelName="Pump" guid="{9c0f46c4-39f1-44c6-a235-6e586dbb7a83}">
  <CoSimulation modelIdentifier="Pump"/>
  <DefaultExperiment startTime="0.0" stopTime="1.0"/>
  <ModelVariables>
    <ScalarVariable name="QAInput" valueReference="0" causality="input" variability="continuous">
      <Real start="0.0" unit="l/min"/>
    </ScalarVariable>
    <ScalarVariable name="pRated" valueReference="1" causality="parameter" variability="fixed">
      <Real start="5.5"/>
    </ScalarVariable>
  </ModelVariables>
</fmiModelDescription>
`

// writeFixtureArchive builds a minimal FMU on disk and returns its path.
func writeFixtureArchive(t *testing.T, dir, name string) string {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, member := range [][2]string{
		{"modelDescription.xml", cliFixtureXML},
		{"binaries/linux64/Pump.so", "fake binary"},
	} {
		entry, err := writer.CreateHeader(&zip.FileHeader{Name: member[0], Method: zip.Deflate})
		if err != nil {
			t.Fatalf("creating member: %v", err)
		}
		if _, err := entry.Write([]byte(member[1])); err != nil {
			t.Fatalf("writing member: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	return path
}

func reloadFixture(t *testing.T, path string) *fmu.Session {
	t.Helper()
	session, err := fmu.Load(path, logging.NewNullLogger())
	if err != nil {
		t.Fatalf("reloading archive: %v", err)
	}
	return session
}

func TestQueryCmd_ArgsValidation(t *testing.T) {
	err := queryCmd.Args(queryCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := fmuedit.ExitCodeForError(err)
	if exitCode != fmuedit.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", fmuedit.ExitUsageError, exitCode, err)
	}
}

func TestQueryCmd_ArgsValidation_TooMany(t *testing.T) {
	err := queryCmd.Args(queryCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
}

func TestSetCmd_ArgsValidation(t *testing.T) {
	err := setCmd.Args(setCmd, []string{"archive.fmu"})
	if err == nil {
		t.Fatal("Expected error for missing variable name")
	}
}

func TestRemoveCmd_ArgsValidation(t *testing.T) {
	err := removeCmd.Args(removeCmd, []string{"archive.fmu"})
	if err == nil {
		t.Fatal("Expected error for missing variable name")
	}
}

func TestReduceCmd_ArgsValidation(t *testing.T) {
	err := reduceCmd.Args(reduceCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestValidateCmd_ArgsValidation(t *testing.T) {
	err := validateCmd.Args(validateCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing archive")
	}
}

func TestQueryCmd_InvalidCausality(t *testing.T) {
	resetQueryFlags()
	queryFlags.causality = "sideways"

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	if err := runQuery(queryCmd, []string{archive}); err == nil {
		t.Fatal("Expected error for unknown causality")
	}
}

func TestQueryCmd_MatchesByCausality(t *testing.T) {
	resetQueryFlags()
	queryFlags.causality = "input"
	queryFlags.jsonOutput = true

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	if err := runQuery(queryCmd, []string{archive}); err != nil {
		t.Fatalf("query failed: %v", err)
	}
}

func TestQueryCmd_NonexistentArchive(t *testing.T) {
	resetQueryFlags()

	err := runQuery(queryCmd, []string{"/nonexistent/pump.fmu"})
	if err == nil {
		t.Fatal("Expected error for nonexistent archive")
	}
}

func TestSetCmd_UnknownVariable(t *testing.T) {
	resetSetFlags()

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	err := runSet(setCmd, []string{archive, "nope"})
	if err == nil {
		t.Fatal("Expected error for unknown variable")
	}
	if !errors.Is(err, fmuedit.ErrVariableNotFound) {
		t.Errorf("Expected ErrVariableNotFound, got: %v", err)
	}
	if code := fmuedit.ExitCodeForError(err); code != fmuedit.ExitVariableNotFound {
		t.Errorf("Expected exit code %d, got %d", fmuedit.ExitVariableNotFound, code)
	}
}

func TestSetCmd_StartValueRoundTrip(t *testing.T) {
	resetSetFlags()

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	if err := setCmd.Flags().Set("start", "69"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	if err := runSet(setCmd, []string{archive, "QAInput"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	variable, ok := reloadFixture(t, archive).GetByName("QAInput")
	if !ok {
		t.Fatal("QAInput disappeared")
	}
	if variable.Start != float64(69) {
		t.Errorf("Expected start float64(69), got %#v", variable.Start)
	}
}

func TestRemoveCmd_RemovesAndWrites(t *testing.T) {
	resetRemoveFlags()

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	if err := runRemove(removeCmd, []string{archive, "pRated"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	session := reloadFixture(t, archive)
	if _, ok := session.GetByName("pRated"); ok {
		t.Error("pRated survived removal")
	}
	if _, ok := session.GetByName("QAInput"); !ok {
		t.Error("QAInput was removed along the way")
	}
}

func TestReduceCmd_EndToEnd(t *testing.T) {
	resetReduceFlags()

	dir := t.TempDir()
	writeFixtureArchive(t, dir, "pump.fmu")
	configJSON := `{"keep_elements": [], "delete_elements": ["pRated"]}`
	if err := os.WriteFile(filepath.Join(dir, "parameter_reduction_config.json"), []byte(configJSON), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if err := runReduce(reduceCmd, []string{dir}); err != nil {
		t.Fatalf("reduce failed: %v", err)
	}

	session := reloadFixture(t, filepath.Join(dir, "pump.fmu"))
	if _, ok := session.GetByName("pRated"); ok {
		t.Error("pRated survived reduction")
	}
}

func TestReduceCmd_MissingConfig(t *testing.T) {
	resetReduceFlags()

	err := runReduce(reduceCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for missing reduction config")
	}
	if code := fmuedit.ExitCodeForError(err); code != fmuedit.ExitConfigError {
		t.Errorf("Expected exit code %d, got %d", fmuedit.ExitConfigError, code)
	}
}

func TestValidateCmd_ConformingArchive(t *testing.T) {
	resetValidateFlags()

	archive := writeFixtureArchive(t, t.TempDir(), "pump.fmu")
	if err := runValidate(validateCmd, []string{archive}); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestParseStartLiteral(t *testing.T) {
	tests := []struct {
		name     string
		dataType model.DataType
		text     string
		want     any
		wantErr  bool
	}{
		{"real", model.TypeReal, "5.5", float64(5.5), false},
		{"real integer literal", model.TypeReal, "69", float64(69), false},
		{"real invalid", model.TypeReal, "fast", nil, true},
		{"integer", model.TypeInteger, "42", 42, false},
		{"integer invalid", model.TypeInteger, "4.2", nil, true},
		{"enumeration keeps text form", model.TypeEnumeration, "2", "2", false},
		{"boolean", model.TypeBoolean, "true", true, false},
		{"boolean invalid", model.TypeBoolean, "yes please", nil, true},
		{"string", model.TypeString, "idle", "idle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStartLiteral(tt.dataType, tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
