// Package roster loads the league's name allowlist from YAML.
package roster

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_roster.yaml
var defaultRoster []byte

type file struct {
	Users []entry `yaml:"users"`
}

type entry struct {
	Name string `yaml:"name"`
}

// Load reads the roster at path, or the embedded default when path is empty.
func Load(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(defaultRoster)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file %s: %w", path, err)
	}
	names, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return names, nil
}

// Parse returns trimmed names in file order. Names that differ only by case
// are rejected.
func Parse(data []byte) ([]string, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Users))
	names := make([]string, 0, len(f.Users))
	for i, u := range f.Users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return nil, fmt.Errorf("user %d has no name", i)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate user %q", name)
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("roster has no users")
	}
	return names, nil
}
