// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file in the directory is one secret: the filename is the key name and the
// trimmed file contents are the value.
//
// Supported key files: anthropic-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Get resolves a secret by precedence: explicit value, loaded secret file,
// then the environment variable (the key uppercased with dashes as
// underscores, e.g. anthropic-api-key -> ANTHROPIC_API_KEY).
func Get(loaded map[string]string, key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := loaded[key]; ok {
		return v
	}
	env := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	return os.Getenv(env)
}
