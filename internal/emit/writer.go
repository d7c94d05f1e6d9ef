package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files under the output directory,
// creating package subdirectories as needed.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Path)

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path, err)
		}
	}

	return nil
}
