package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// TemplateExt is the file extension of template files.
const TemplateExt = ".template"

//go:embed templates/*.template
var builtin embed.FS

// Source looks up raw template text by name.
type Source interface {
	Lookup(name string) (string, error)
}

// DirSource reads <Dir>/<name>.template.
type DirSource struct {
	Dir string
}

func (d DirSource) Lookup(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name+TemplateExt))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s in %s", ErrTemplateNotFound, name, d.Dir)
	}
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(data), nil
}

// EmbedSource serves the templates shipped with the binary.
type EmbedSource struct{}

func (EmbedSource) Lookup(name string) (string, error) {
	data, err := builtin.ReadFile("templates/" + name + TemplateExt)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// Layered tries each source in order; the first that has the template wins.
type Layered []Source

func (l Layered) Lookup(name string) (string, error) {
	for _, s := range l {
		text, err := s.Lookup(name)
		if errors.Is(err, ErrTemplateNotFound) {
			continue
		}
		return text, err
	}
	return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// DefaultSource returns dir layered over the built-in templates, or just the
// built-ins when dir is empty.
func DefaultSource(dir string) Source {
	if dir == "" {
		return EmbedSource{}
	}
	return Layered{DirSource{Dir: dir}, EmbedSource{}}
}
