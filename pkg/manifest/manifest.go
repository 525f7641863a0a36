package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry is one generated file.
type Entry struct {
	Path     string `yaml:"path" json:"path"`
	Template string `yaml:"template" json:"template"`
	Source   string `yaml:"source" json:"source"`
}

// Generation is the set of files produced by one run.
type Generation struct {
	Namespace  string  `yaml:"namespace" json:"namespace"`
	ModuleName string  `yaml:"module_name" json:"module_name"`
	Version    string  `yaml:"version,omitempty" json:"version,omitempty"`
	Files      []Entry `yaml:"files" json:"files"`
}

// Paths returns the generated paths in lexical order.
func (g *Generation) Paths() []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		out = append(out, f.Path)
	}
	sort.Strings(out)
	return out
}

// Manifest tracks the last two generations written to an output tree.
type Manifest struct {
	Current  *Generation `yaml:"current,omitempty" json:"current,omitempty"`
	Previous *Generation `yaml:"previous,omitempty" json:"previous,omitempty"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Record makes g the current generation, keeping the old one as previous.
// Files are stored sorted by path.
func (m *Manifest) Record(g Generation) {
	sort.Slice(g.Files, func(i, j int) bool { return g.Files[i].Path < g.Files[j].Path })
	if m.Current != nil {
		m.Previous = m.Current
	}
	m.Current = &g
}

// Stale lists files of the previous generation the current one no longer
// produces.
func (m *Manifest) Stale() []string {
	if m.Previous == nil {
		return nil
	}
	current := make(map[string]bool)
	for _, p := range m.Current.Paths() {
		current[p] = true
	}
	out := make([]string, 0)
	for _, p := range m.Previous.Paths() {
		if !current[p] {
			out = append(out, p)
		}
	}
	return out
}
