package cli

import (
	"cptask-tools/internal/models"
	"os"
	"path/filepath"
	"strings"
)

// inputFiles lists the CSV files of dir except the mapping export
func inputFiles(dir, mappingFile string) ([]string, error) {
	files, err := globFiles(dir, "*.csv")
	if err != nil {
		return nil, err
	}

	out := files[:0]
	for _, f := range files {
		if filepath.Base(f) != filepath.Base(mappingFile) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, models.ValidationError("no CSV files found in %s (excluding mapping file)", dir)
	}
	return out, nil
}

// mappedFiles lists the short name mapping outputs of dir
func mappedFiles(dir string) ([]string, error) {
	files, err := globFiles(dir, "*_output_*.csv")
	if err != nil {
		return nil, err
	}

	out := files[:0]
	for _, f := range files {
		if !strings.Contains(filepath.Base(f), "_with_urls_") {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, models.ValidationError("no mapped output files (*_output_*.csv) found in %s", dir)
	}
	return out, nil
}

// globFiles returns the files of dir matching pattern, sorted by name
func globFiles(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, models.IOError("open directory", dir, err)
	}
	if !info.IsDir() {
		return nil, models.ValidationError("%s is not a directory", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, models.ValidationError("bad file pattern %q: %v", pattern, err)
	}
	return files, nil
}

// requireFile checks that path exists and is a regular file
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return models.IOError("open", path, err)
	}
	if info.IsDir() {
		return models.ValidationError("%s is a directory", path)
	}
	return nil
}
