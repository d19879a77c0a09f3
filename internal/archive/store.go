package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// Store provides read access to the members of a loaded archive.
type Store interface {
	// Members returns the member names in archive order.
	Members() []string

	// Has reports whether a member with the given name exists.
	Has(name string) bool

	// Read returns the decompressed content of the named member.
	Read(name string) ([]byte, error)
}

// zipStore implements Store over an in-memory zip archive.
type zipStore struct {
	reader *zip.Reader
	byName map[string]*zip.File
	names  []string
}

// Open creates a Store over raw archive bytes.
func Open(data []byte) (Store, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable zip container: %v", fmuedit.ErrArchiveIntegrity, err)
	}

	store := &zipStore{
		reader: reader,
		byName: make(map[string]*zip.File, len(reader.File)),
		names:  make([]string, 0, len(reader.File)),
	}
	for _, member := range reader.File {
		store.names = append(store.names, member.Name)
		store.byName[member.Name] = member
	}
	return store, nil
}

func (s *zipStore) Members() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *zipStore) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *zipStore) Read(name string) ([]byte, error) {
	member, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: member %q not found", fmuedit.ErrArchiveIntegrity, name)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening member %q: %v", fmuedit.ErrArchiveIntegrity, name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading member %q: %v", fmuedit.ErrArchiveIntegrity, name, err)
	}
	return content, nil
}

// Replace produces a new archive from src with the named member's content
// swapped for the provided bytes. All other members are raw-copied in their
// original order; the replacement reuses the original member's header with
// deflate compression.
//
// Fails before producing any output when the member is absent, so callers
// never persist a partial archive.
func Replace(src []byte, name string, content []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable zip container: %v", fmuedit.ErrArchiveIntegrity, err)
	}

	found := false
	for _, member := range reader.File {
		if member.Name == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: member %q not found", fmuedit.ErrArchiveIntegrity, name)
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, member := range reader.File {
		if member.Name != name {
			// Raw copy keeps compressed bytes, method and header untouched.
			if err := writer.Copy(member); err != nil {
				return nil, fmt.Errorf("%w: copying member %q: %v", fmuedit.ErrArchiveIntegrity, member.Name, err)
			}
			continue
		}

		header := member.FileHeader
		header.Method = zip.Deflate
		entry, err := writer.CreateHeader(&header)
		if err != nil {
			return nil, fmt.Errorf("%w: replacing member %q: %v", fmuedit.ErrArchiveIntegrity, name, err)
		}
		if _, err := entry.Write(content); err != nil {
			return nil, fmt.Errorf("%w: writing member %q: %v", fmuedit.ErrArchiveIntegrity, name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing archive: %v", fmuedit.ErrArchiveIntegrity, err)
	}
	return buf.Bytes(), nil
}
