// Package artifacts stores uploaded model files under a media root.
// The rest of the system only ever holds the returned path; swapping
// the disk store for an object store means implementing Store.
package artifacts

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves uploaded artifact payloads and returns a stable reference
// path for them.
type Store interface {
	// Save writes the payload and returns the path it is stored under,
	// relative to the media root.
	Save(filename string, r io.Reader) (string, error)
}

// Ensure DiskStore implements Store
var _ Store = (*DiskStore)(nil)

// DiskStore implements Store on the local filesystem.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at the given directory,
// creating it if necessary.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "models"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the media root directory.
func (d *DiskStore) Root() string {
	return d.root
}

// Save writes the payload under models/ with a random prefix so repeat
// uploads of the same filename never collide.
func (d *DiskStore) Save(filename string, r io.Reader) (string, error) {
	name := sanitize(filename)
	rel := path.Join("models", uuid.New().String()[:8]+"_"+name)

	f, err := os.Create(filepath.Join(d.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return rel, nil
}

// sanitize strips any path components from a client-supplied filename.
func sanitize(filename string) string {
	name := filepath.Base(filepath.Clean(strings.ReplaceAll(filename, "\\", "/")))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "artifact"
	}
	return name
}
