package lexbatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// SaveJobID stores the job id at path, replacing any previous id. The file
// is written to a temporary sibling first and renamed into place, so a reader
// never sees a partial id.
func SaveJobID(path, id string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("save job id: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(id + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("save job id: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save job id: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save job id: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save job id: %w", err)
	}
	return nil
}

// LoadJobID reads the job id stored by SaveJobID. A missing or empty file
// yields domain.ErrNoJob.
func LoadJobID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("load job id from %s: %w", path, domain.ErrNoJob)
		}
		return "", fmt.Errorf("load job id: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("load job id from %s: %w", path, domain.ErrNoJob)
	}
	return id, nil
}
