package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/domkit-dev/domkit/pkg/parse"
)

// markupExtensions are the file extensions LoadDir treats as documents.
var markupExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".heex": true,
	".xml":  true,
}

// LoadDir parses every markup file directly inside dir and publishes it
// into store under its base name without extension. Returns the number
// of documents published.
func LoadDir(store *Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("server: read document dir: %w", err)
	}

	published := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !markupExtensions[ext] {
			continue
		}
		src, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return published, err
		}
		tree, err := parse.Fragment(string(src))
		if err != nil {
			return published, fmt.Errorf("server: parse %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		store.Publish(name, tree)
		published++
	}
	return published, nil
}
