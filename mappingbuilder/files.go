package mappingbuilder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// File names under the data directory. All three are fully regenerated per
// run; only the forward mapping gets a backup copy before overwrite.
const (
	IDSetFileName   = "monarch-ids.json"
	MappingFileName = "monarch-omim.json"
	BackupFileName  = "monarch-omim.backup.json"
	ReverseFileName = "omim-monarch.json"
)

// writeJSONFile pretty-prints v to path, creating the parent directory if
// needed.
func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// readJSONFile decodes the JSON file at path into out.
func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// SaveIDSet persists the harvested identifiers, organized by category.
func SaveIDSet(dataDir string, idSet entities.CategoryIDSet) error {
	path := filepath.Join(dataDir, IDSetFileName)
	if err := writeJSONFile(path, idSet); err != nil {
		return err
	}

	logging.Info("Saved identifiers", "path", path)
	for category, ids := range idSet {
		logging.Info("Category identifier count", "category", category, "count", len(ids))
	}

	return nil
}

// LoadIDSet reads a previously harvested identifier set.
func LoadIDSet(dataDir string) (entities.CategoryIDSet, error) {
	var idSet entities.CategoryIDSet
	if err := readJSONFile(filepath.Join(dataDir, IDSetFileName), &idSet); err != nil {
		return nil, err
	}
	return idSet, nil
}

// SaveMapping persists the forward mapping. An existing file is first
// copied byte-for-byte to the backup path.
func SaveMapping(dataDir string, mapping entities.Mapping) error {
	path := filepath.Join(dataDir, MappingFileName)

	if err := backupExisting(path, filepath.Join(dataDir, BackupFileName)); err != nil {
		return err
	}

	if err := writeJSONFile(path, mapping); err != nil {
		return err
	}

	logging.Info("Successfully updated mappings", "path", path, "entries", len(mapping))
	return nil
}

// backupExisting copies the current bytes of path to backupPath when path
// exists. A missing file is not an error.
func backupExisting(path, backupPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read existing mapping for backup: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", backupPath, err)
	}

	logging.Info("Created backup", "path", backupPath)
	return nil
}

// LoadMapping reads the forward mapping file.
func LoadMapping(dataDir string) (entities.Mapping, error) {
	var mapping entities.Mapping
	if err := readJSONFile(filepath.Join(dataDir, MappingFileName), &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// SaveReverseMapping persists the reverse mapping. No backup is taken for
// this file.
func SaveReverseMapping(dataDir string, reverse entities.ReverseMapping) error {
	path := filepath.Join(dataDir, ReverseFileName)
	if err := writeJSONFile(path, reverse); err != nil {
		return err
	}

	logging.Info("Successfully created reverse mappings", "path", path, "entries", len(reverse))
	return nil
}
