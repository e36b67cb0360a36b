package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	originalDirName = "original"
	previewDirName  = "preview"
	partsDirName    = "parts"
	incomingDirName = "incoming"
)

// Layout maps asset identities to paths under the upload root. Every path is
// a pure function of the root and the identity.
type Layout struct {
	root string
}

// NewLayout returns a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{root: root}
}

// Root returns the upload root.
func (l Layout) Root() string { return l.root }

// OriginalDir holds ingested videos named by canonical id.
func (l Layout) OriginalDir() string { return filepath.Join(l.root, originalDirName) }

// PreviewDir holds one preview image per digest.
func (l Layout) PreviewDir() string { return filepath.Join(l.root, previewDirName) }

// IncomingDir holds uploads while they are being received.
func (l Layout) IncomingDir() string { return filepath.Join(l.root, incomingDirName) }

// OriginalPath is {root}/original/{digest}{ext}.
func (l Layout) OriginalPath(id CanonicalID) string {
	return filepath.Join(l.OriginalDir(), id.String())
}

// PartsDir is {root}/parts/{digest}.
func (l Layout) PartsDir(digest string) string {
	return filepath.Join(l.root, partsDirName, digest)
}

// Volumes returns the named subdirectories, for metric labeling.
func (l Layout) Volumes() map[string]string {
	return map[string]string{
		originalDirName: l.OriginalDir(),
		previewDirName:  l.PreviewDir(),
		partsDirName:    filepath.Join(l.root, partsDirName),
		incomingDirName: l.IncomingDir(),
	}
}

// Provision creates the fixed directories under the root.
func (l Layout) Provision() error {
	for name, dir := range l.Volumes() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s directory: %w", name, err)
		}
	}
	return nil
}
