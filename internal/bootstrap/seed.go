// Package bootstrap seeds example documents into the data directory on
// first run, so operators have working references to copy from.
package bootstrap

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed templates/*.json5
var templateFS embed.FS

// exampleFiles lists the documents to seed, in order.
var exampleFiles = []string{
	"config.example.json5",
	"responses.example.json5",
}

// ReadTemplate returns the content of an embedded example document.
func ReadTemplate(name string) (string, error) {
	content, err := templateFS.ReadFile(filepath.Join("templates", name))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// EnsureDataFiles seeds the example documents into the data directory.
// Only writes files that don't already exist (will not overwrite).
// Returns the list of files that were created.
func EnsureDataFiles(dataDir string) ([]string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	var created []string
	for _, name := range exampleFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return created, err
		}

		content, err := ReadTemplate(name)
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return created, err
		}
		created = append(created, name)
	}

	return created, nil
}
