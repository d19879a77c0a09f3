package fmu

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/simtoolkit/fmuedit/internal/logging"
)

// fixtureXML wraps variable declarations in a minimal but complete FMI 2.0
// co-simulation model description.
func fixtureXML(variables string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<fmiModelDescription fmiVersion="2.0" modelName="SrcTest"
    guid="{8c4e810f-3df3-4a00-8276-176fa3c9f9e0}"
    description="Hydraulic test rig source model"
    author="Test Bench"
    generationTool="TestGen 1.0"
    variableNamingConvention="structured"
    numberOfEventIndicators="0">
  <CoSimulation modelIdentifier="SrcTest"
      canHandleVariableCommunicationStepSize="true"
      canInterpolateInputs="true"
      maxOutputDerivativeOrder="1"
      canGetAndSetFMUstate="true"/>
  <DefaultExperiment startTime="0.0" stopTime="10.0" tolerance="1e-06" stepSize="0.01"/>
  <ModelVariables>
` + variables + `  </ModelVariables>
</fmiModelDescription>
`
}

// defaultVariables is the small fixture most tests use. It covers every data
// type, variables with and without optional attributes, and a duplicated
// name for ambiguity tests.
const defaultVariables = `    <ScalarVariable name="QAInput" valueReference="0" causality="input" variability="continuous" unit="l/min" description="Flow demand">
      <Real start="0.0"/>
    </ScalarVariable>
    <ScalarVariable name="xCyl" valueReference="1" causality="local" variability="continuous" unit="m">
      <Real/>
    </ScalarVariable>
    <ScalarVariable name="pRated" valueReference="2" causality="parameter" variability="fixed" initial="exact" unit="bar" description="Rated pressure">
      <Real start="5.5"/>
    </ScalarVariable>
    <ScalarVariable name="counter" valueReference="3" causality="output" variability="discrete">
      <Integer start="0"/>
    </ScalarVariable>
    <ScalarVariable name="enabled" valueReference="4" causality="parameter" variability="fixed" initial="exact">
      <Boolean start="true"/>
    </ScalarVariable>
    <ScalarVariable name="mode" valueReference="5" causality="parameter" variability="fixed" initial="exact">
      <String start="idle"/>
    </ScalarVariable>
    <ScalarVariable name="gear" valueReference="6" causality="parameter" variability="fixed" initial="exact">
      <Enumeration start="2"/>
    </ScalarVariable>
    <ScalarVariable name="raw" valueReference="7">
      <Real/>
    </ScalarVariable>
    <ScalarVariable name="dupSensor" valueReference="8" causality="local">
      <Real/>
    </ScalarVariable>
    <ScalarVariable name="dupSensor" valueReference="9" causality="local">
      <Real/>
    </ScalarVariable>
`

// fixtureArchive builds an FMU zip holding the given model description plus
// the usual surrounding members.
func fixtureArchive(t *testing.T, descriptionXML string) []byte {
	t.Helper()

	members := [][2]string{
		{"modelDescription.xml", descriptionXML},
		{"binaries/linux64/SrcTest.so", "\x7fELF fake shared object"},
		{"resources/calibration.csv", "k,v\ngain,1.25\n"},
		{"documentation/index.html", "<html><body>SrcTest</body></html>"},
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, member := range members {
		entry, err := writer.CreateHeader(&zip.FileHeader{Name: member[0], Method: zip.Deflate})
		if err != nil {
			t.Fatalf("creating member %s: %v", member[0], err)
		}
		if _, err := entry.Write([]byte(member[1])); err != nil {
			t.Fatalf("writing member %s: %v", member[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing fixture archive: %v", err)
	}
	return buf.Bytes()
}

// testSession loads the small fixture.
func testSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(fixtureArchive(t, fixtureXML(defaultVariables)), logging.NewNullLogger())
	if err != nil {
		t.Fatalf("loading fixture session: %v", err)
	}
	return session
}

// largeVariables generates the 179-variable description from the reference
// scenario: 3 inputs, 4 outputs, one local named xCyl, the rest parameters.
func largeVariables() string {
	var buf bytes.Buffer
	ref := 0
	write := func(name, causality, extra, value string) {
		fmt.Fprintf(&buf, `    <ScalarVariable name=%q valueReference="%d" causality=%q%s>
      %s
    </ScalarVariable>
`, name, ref, causality, extra, value)
		ref++
	}

	write("QAInput", "input", ` variability="continuous"`, `<Real start="0.0"/>`)
	write("QBInput", "input", ` variability="continuous"`, `<Real start="0.0"/>`)
	write("pSupply", "input", ` variability="continuous"`, `<Real start="100.0"/>`)
	for i := 1; i <= 4; i++ {
		write(fmt.Sprintf("out%02d", i), "output", ` variability="continuous"`, `<Real/>`)
	}
	write("xCyl", "local", ` variability="continuous"`, `<Real/>`)
	for ref < 179 {
		write(fmt.Sprintf("par%03d", ref), "parameter", ` variability="fixed" initial="exact"`, fmt.Sprintf(`<Real start="%d.5"/>`, ref))
	}
	return buf.String()
}

// removeMember rebuilds an archive without its modelDescription.xml member.
func removeMember(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, member := range reader.File {
		if member.Name == "modelDescription.xml" {
			continue
		}
		if err := writer.Copy(member); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// largeSession loads the 179-variable fixture.
func largeSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(fixtureArchive(t, fixtureXML(largeVariables())), logging.NewNullLogger())
	if err != nil {
		t.Fatalf("loading large fixture session: %v", err)
	}
	return session
}
