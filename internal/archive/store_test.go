package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// buildZip assembles an in-memory archive from ordered name/content pairs.
func buildZip(t *testing.T, members [][2]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, member := range members {
		entry, err := writer.CreateHeader(&zip.FileHeader{Name: member[0], Method: zip.Deflate})
		require.NoError(t, err)
		_, err = entry.Write([]byte(member[1]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestOpen_ListsMembersInArchiveOrder(t *testing.T) {
	data := buildZip(t, [][2]string{
		{"modelDescription.xml", "<xml/>"},
		{"binaries/linux64/model.so", "\x7fELF"},
		{"resources/data.txt", "payload"},
	})

	store, err := Open(data)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"modelDescription.xml",
		"binaries/linux64/model.so",
		"resources/data.txt",
	}, store.Members())
	assert.True(t, store.Has("modelDescription.xml"))
	assert.False(t, store.Has("missing.txt"))
}

func TestOpen_RejectsNonZipBytes(t *testing.T) {
	_, err := Open([]byte("this is not a zip archive"))
	assert.ErrorIs(t, err, fmuedit.ErrArchiveIntegrity)
}

func TestRead_ReturnsMemberContent(t *testing.T) {
	data := buildZip(t, [][2]string{{"resources/data.txt", "payload"}})

	store, err := Open(data)
	require.NoError(t, err)

	content, err := store.Read("resources/data.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
}

func TestRead_MissingMember(t *testing.T) {
	data := buildZip(t, [][2]string{{"a.txt", "a"}})

	store, err := Open(data)
	require.NoError(t, err)

	_, err = store.Read("b.txt")
	assert.ErrorIs(t, err, fmuedit.ErrArchiveIntegrity)
}

func TestReplace_SwapsOnlyTargetMember(t *testing.T) {
	data := buildZip(t, [][2]string{
		{"modelDescription.xml", "<old/>"},
		{"binaries/model.so", "binary-bytes"},
		{"resources/data.txt", "payload"},
	})

	out, err := Replace(data, "modelDescription.xml", []byte("<new/>"))
	require.NoError(t, err)

	store, err := Open(out)
	require.NoError(t, err)

	// Same member set, same order.
	assert.Equal(t, []string{
		"modelDescription.xml",
		"binaries/model.so",
		"resources/data.txt",
	}, store.Members())

	replaced, err := store.Read("modelDescription.xml")
	require.NoError(t, err)
	assert.Equal(t, []byte("<new/>"), replaced)

	untouched, err := store.Read("binaries/model.so")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary-bytes"), untouched)
}

func TestReplace_MissingMemberFailsBeforeOutput(t *testing.T) {
	data := buildZip(t, [][2]string{{"a.txt", "a"}})

	_, err := Replace(data, "modelDescription.xml", []byte("<new/>"))
	assert.ErrorIs(t, err, fmuedit.ErrArchiveIntegrity)
}

func TestReplace_Deterministic(t *testing.T) {
	data := buildZip(t, [][2]string{
		{"modelDescription.xml", "<old/>"},
		{"resources/data.txt", "payload"},
	})

	first, err := Replace(data, "modelDescription.xml", []byte("<new/>"))
	require.NoError(t, err)
	second, err := Replace(data, "modelDescription.xml", []byte("<new/>"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce byte-identical archives")
}
