package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON writes the dataset as a pretty-printed JSON array.
func (w *Writer) WriteJSON(path string, rows []Row) error {
	data, err := json.MarshalIndent(rows, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.log.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Info("Wrote JSON file")
	return nil
}

// ReadJSON loads a previously exported JSON file. Used by the analyze
// command.
func ReadJSON(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}
