// Package output persists generated documents to the output directory.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document file names, one per projection.
const (
	IndexFile            = "index.json"
	DownloadsFile        = "downloads.json"
	AllComponentsFile    = "all_components.json"
	ComponentListFile    = "components.json"
	DefaultComponentFile = "default_component.json"
	ImagefsFile          = "imagefs.json"
	ExecuteGenericFile   = "execute_generic.json"
	ExecuteQualcommFile  = "execute_qualcomm.json"
)

// ManifestFile returns the file name of the per-type manifest document.
func ManifestFile(typ int) string {
	return fmt.Sprintf("manifest_%d.json", typ)
}

// Writer writes documents into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteDocument marshals doc and writes it to name under the output
// directory. The write goes through a temporary file and an atomic rename so
// a crashed build never leaves a half-written document behind.
func (w *Writer) WriteDocument(name string, doc any) error {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}
	data = append(data, '\n')

	filePath := filepath.Join(w.dir, name)
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary document file: %w", err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename document file %s: %w", name, err)
	}

	return nil
}
