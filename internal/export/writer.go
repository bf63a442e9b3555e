package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteResults serializes v as JSON indented by two spaces to filePath, replacing any existing file.
// Missing parent directories are created. Characters such as <, > and & are written unescaped.
func WriteResults(filePath string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", filePath)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", filePath)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "error writing %s", filePath)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "error closing %s", filePath)
	}
	return nil
}
