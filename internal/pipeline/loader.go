// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// LoadEmails reads email records from a JSON file or from every .json
// file directly inside a directory. Files in a directory are read in
// name order so runs are reproducible.
func LoadEmails(source string) ([]types.Email, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("stating source %s: %w", source, err)
	}
	if !info.IsDir() {
		return loadEmailFile(source)
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", source, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var emails []types.Email
	for _, name := range names {
		batch, err := loadEmailFile(filepath.Join(source, name))
		if err != nil {
			return nil, err
		}
		emails = append(emails, batch...)
	}
	return emails, nil
}

// loadEmailFile accepts either a bare array of email records or an
// object wrapping one under "emails". Archive dumps use both shapes.
func loadEmailFile(path string) ([]types.Email, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var emails []types.Email
	if err := json.Unmarshal(data, &emails); err == nil {
		return emails, nil
	}

	var wrapped struct {
		Emails []types.Email `json:"emails"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return wrapped.Emails, nil
}
