package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report file names, fixed for compatibility with existing consumers.
const (
	BiggestFileReport   = "biggest_file_info.json"
	BiggestFolderReport = "biggest_folder_info.json"
)

// WriteBiggestReports writes the biggest-file and biggest-folder reports for
// the snapshot into dir. An empty snapshot produces no files.
func (s *Snapshot) WriteBiggestReports(dir string) error {
	if f := s.BiggestFile(); f != nil {
		if err := WriteSizeReport(filepath.Join(dir, BiggestFileReport), f.Name, f.Size); err != nil {
			return err
		}
	}
	if d := s.BiggestFolder(); d != nil {
		if err := WriteSizeReport(filepath.Join(dir, BiggestFolderReport), d.Name, d.Size); err != nil {
			return err
		}
	}
	return nil
}

// WriteSizeReport writes a `{name: size}` JSON report to path.
func WriteSizeReport(path, name string, size int64) error {
	data, err := json.Marshal(map[string]int64{name: size})
	if err != nil {
		return fmt.Errorf("failed to encode size report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write size report: %w", err)
	}
	return nil
}
