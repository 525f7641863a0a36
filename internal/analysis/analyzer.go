package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmmoran/elementgen/internal/model"
	"github.com/cmmoran/elementgen/internal/resolve"
)

// Analyzer turns one component source into items.
type Analyzer interface {
	Analyze(ctx context.Context, path string) ([]*model.Item, error)
}

// descriptorFiles are tried in order for a component directory.
var descriptorFiles = []string{"bower.json", "package.json"}

// FileAnalyzer reads pre-computed analyzer documents laid out as
// <Root>/<component dir>/<file>. The package descriptor of the component
// directory is attached to each item.
type FileAnalyzer struct {
	Root string
	Log  *slog.Logger
}

func NewFileAnalyzer(root string, log *slog.Logger) *FileAnalyzer {
	if log == nil {
		log = slog.Default()
	}
	return &FileAnalyzer{Root: root, Log: log}
}

func (a *FileAnalyzer) Analyze(ctx context.Context, p string) ([]*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := a.relative(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(a.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}
	doc, err := DecodeDocument(rel, data)
	if err != nil {
		return nil, err
	}
	pkg := a.descriptor(componentDir(rel))
	return Normalize(doc, rel, pkg), nil
}

func (a *FileAnalyzer) relative(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	rel, err := filepath.Rel(a.Root, p)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

// descriptor loads the package descriptor of dir. Missing or broken
// descriptors yield an empty bag.
func (a *FileAnalyzer) descriptor(dir string) model.PackageMetadata {
	for _, name := range descriptorFiles {
		file := filepath.Join(a.Root, filepath.FromSlash(dir), name)
		data, err := os.ReadFile(file)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			a.Log.With("error", err, "file", file).Debug("unable to read package descriptor")
			continue
		}
		pkg := model.PackageMetadata{}
		if err = json.Unmarshal(data, &pkg); err != nil {
			a.Log.With("error", err, "file", file).Debug("invalid package descriptor")
			continue
		}
		return pkg
	}
	return model.PackageMetadata{}
}

func componentDir(rel string) string {
	dir, _, found := strings.Cut(rel, "/")
	if !found {
		return ""
	}
	return dir
}

// Normalize converts a decoded document into items, deriving missing names
// from tag names and dropping the "Polymer." namespace.
func Normalize(doc *Document, rel string, pkg model.PackageMetadata) []*model.Item {
	if pkg == nil {
		pkg = model.PackageMetadata{}
	}
	out := make([]*model.Item, 0, len(doc.Elements)+len(doc.Metadata.Polymer.Behaviors))
	for _, raw := range doc.Elements {
		out = append(out, toItem(raw, model.KindElement, rel, pkg))
	}
	for _, raw := range doc.Metadata.Polymer.Behaviors {
		out = append(out, toItem(raw, model.KindBehavior, rel, pkg))
	}
	return out
}

func toItem(raw RawItem, kind model.Kind, rel string, pkg model.PackageMetadata) *model.Item {
	name := raw.Name
	if name == "" {
		name = resolve.CamelCase(raw.TagName)
	}
	refs := make([]string, 0, len(raw.Behaviors))
	for _, b := range raw.Behaviors {
		refs = append(refs, stripPolymer(b))
	}
	return &model.Item{
		Kind:         kind,
		Name:         stripPolymer(name),
		TagName:      raw.TagName,
		Description:  raw.Description,
		Path:         path.Clean(rel),
		Superclass:   raw.Superclass,
		Properties:   append([]model.Property(nil), raw.Properties...),
		Methods:      append([]model.Method(nil), raw.Methods...),
		Events:       append([]model.Event(nil), raw.Events...),
		BehaviorRefs: refs,
		Package:      pkg,
	}
}

func stripPolymer(name string) string {
	return strings.Replace(name, "Polymer.", "", 1)
}
