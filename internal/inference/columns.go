package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadColumns reads the trained column list from a JSON array file.
func LoadColumns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open column artifact: %w", err)
	}
	defer f.Close()

	return ParseColumns(f)
}

// ParseColumns decodes a JSON array of column names.
func ParseColumns(r io.Reader) ([]string, error) {
	var columns []string
	if err := json.NewDecoder(r).Decode(&columns); err != nil {
		return nil, fmt.Errorf("%w: decode columns: %v", ErrInvalidArtifact, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: column list is empty", ErrInvalidArtifact)
	}
	return columns, nil
}
