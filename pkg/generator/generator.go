package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/cmmoran/elementgen/internal/model"
	"github.com/cmmoran/elementgen/internal/render"
	"github.com/cmmoran/elementgen/internal/resolve"
)

const (
	moduleExt = ".gwt.xml"
	pomFile   = "pom.xml"
)

var ErrInvalidVersion = errors.New("invalid project version")

// Unit records one generated file.
type Unit struct {
	Template string `yaml:"template" json:"template"`
	Path     string `yaml:"path" json:"path"`
	Source   string `yaml:"source" json:"source"`
}

// Generator holds the state of one generation run over a populated registry.
type Generator struct {
	Opts     Options
	Registry *resolve.Registry
	Units    []Unit

	resolver *resolve.Resolver
	namer    resolve.Namer
	renderer *render.Renderer
	writer   render.Writer
	log      *slog.Logger

	failed  map[*model.Item]error
	written map[string]bool
}

// New builds a generator from functional options.
func New(reg *resolve.Registry, w render.Writer, opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(reg, w, o)
}

func NewWithOpts(reg *resolve.Registry, w render.Writer, opts *Options) (*Generator, error) {
	opts.Normalize()

	renderer, err := render.NewRenderer(render.DefaultSource(opts.TemplateDir), 0)
	if err != nil {
		return nil, err
	}
	log := slog.Default().With("namespace", opts.Namespace)

	return &Generator{
		Opts:     *opts,
		Registry: reg,
		Units:    make([]Unit, 0),
		resolver: resolve.NewResolver(reg, log),
		namer: resolve.Namer{
			Namespace: opts.Namespace,
			Root:      opts.Root(),
			Ext:       opts.Ext,
		},
		renderer: renderer,
		writer:   w,
		log:      log,
		failed:   make(map[*model.Item]error),
		written:  make(map[string]bool),
	}, nil
}

// Resolve flattens behaviors into every element, then drops non-public
// properties from every item. Items whose resolution fails are excluded from
// generation; their errors are joined into the result.
func (g *Generator) Resolve() error {
	var errs []error
	for it := range g.Registry.All() {
		switch it.Kind {
		case model.KindElement:
			if err := g.resolver.Apply(it); err != nil {
				g.failed[it] = err
				g.log.With("error", err, "item", it.Name, "path", it.Path).Error("unable to resolve behaviors")
				errs = append(errs, err)
			}
		case model.KindBehavior:
		}
	}
	for it := range g.Registry.All() {
		resolve.FilterItem(it)
	}
	return errors.Join(errs...)
}

// Generate renders every enabled target. A failing unit aborts the rest of
// its item for that target; generation carries on with the next item and all
// failures are returned together.
func (g *Generator) Generate(ctx context.Context) error {
	var errs []error
	for _, target := range AllTargets {
		if !g.Opts.Wants(target) || target == TargetModule {
			continue
		}
		for it := range g.Registry.All() {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if _, bad := g.failed[it]; bad {
				continue
			}
			if err := g.generateItem(target, it); err != nil {
				g.log.With("error", err, "item", it.Name, "target", target).Error("generation failed")
				errs = append(errs, err)
			}
		}
	}
	if g.Opts.Wants(TargetModule) && g.Opts.NeedsModule() {
		if err := g.generateModule(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Generator) generateItem(target string, it *model.Item) error {
	switch target {
	case TargetElements:
		switch it.Kind {
		case model.KindBehavior:
			n, ctx := g.itemContext(it, "", "")
			return g.emit(render.TemplateBehavior, n, ctx, it.Name)
		case model.KindElement:
			n, ctx := g.itemContext(it, "Element", "")
			return g.emit(render.TemplateElement, n, ctx, it.Name)
		}
	case TargetEvents:
		for _, ev := range it.Events {
			n, ctx := g.eventContext(it, ev, "Event", "event")
			if err := g.emit(render.TemplateElementEvent, n, ctx, it.Name); err != nil {
				return err
			}
		}
	case TargetWidgets:
		switch it.Kind {
		case model.KindElement:
			n, ctx := g.itemContext(it, "", "widget")
			return g.emit(render.TemplateWidget, n, ctx, it.Name)
		case model.KindBehavior:
		}
	case TargetWidgetEvents:
		for _, ev := range it.Events {
			n, ctx := g.eventContext(it, ev, "Event", "widget/event")
			if err := g.emit(render.TemplateWidgetEvent, n, ctx, it.Name); err != nil {
				return err
			}
			n, ctx = g.eventContext(it, ev, "EventHandler", "widget/event")
			if err := g.emit(render.TemplateWidgetEventHandler, n, ctx, it.Name); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown target %q", target)
	}
	return nil
}

func (g *Generator) itemContext(it *model.Item, suffix, dir string) (resolve.Naming, render.ItemContext) {
	n := g.namer.Resolve(resolve.Subject{
		Name:    it.Name,
		Path:    it.Path,
		Package: it.Package,
		Suffix:  suffix,
		Dir:     dir,
	})
	events := make([]model.Event, len(it.Events))
	for i, ev := range it.Events {
		events[i] = ev
		events[i].Name = ev.TrimName()
		events[i].Package = it.Package
	}
	return n, render.ItemContext{
		Namespace:     n.Namespace,
		Package:       n.Package,
		Prefix:        n.Prefix,
		ClassName:     n.ClassName,
		BaseClassName: n.BaseClassName,
		HasBase:       g.hasBase(n),
		Name:          it.Name,
		TagName:       it.TagName,
		Description:   it.Description,
		Superclass:    resolve.SubstituteSuperclass(it.Superclass),
		Path:          it.Path,
		IsBehavior:    it.IsBehavior(),
		Properties:    it.Properties,
		Methods:       resolve.MarkDuplicateAccessors(it.Properties, it.Methods),
		Events:        events,
		Behaviors:     it.BehaviorRefs,
		Descriptor:    it.Package,
	}
}

func (g *Generator) eventContext(owner *model.Item, ev model.Event, suffix, dir string) (resolve.Naming, render.EventContext) {
	name := ev.TrimName()
	n := g.namer.Resolve(resolve.Subject{
		Name:    name,
		Path:    owner.Path,
		Package: owner.Package,
		Suffix:  suffix,
		Dir:     dir,
	})
	return n, render.EventContext{
		Namespace:     n.Namespace,
		Package:       n.Package,
		Prefix:        n.Prefix,
		ClassName:     n.ClassName,
		BaseClassName: n.BaseClassName,
		HasBase:       g.hasBase(n),
		Name:          name,
		Description:   ev.Description,
		Params:        ev.Params,
		Owner:         owner.Name,
		Descriptor:    owner.Package,
	}
}

// hasBase reports whether a hand written base class sits next to the output.
func (g *Generator) hasBase(n resolve.Naming) bool {
	_, err := os.Stat(filepath.Join(filepath.Dir(n.Path), n.BaseClassName+g.Opts.Ext))
	return err == nil
}

func (g *Generator) emit(template string, n resolve.Naming, data any, source string) error {
	if g.written[n.Path] {
		g.log.With("file", n.Path, "template", template, "source", source).Debug("already generated, skipping")
		return nil
	}
	text, err := g.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("generate %s for %s: %w", template, source, err)
	}
	if err = g.writer.Write(n.Path, text); err != nil {
		return err
	}
	g.written[n.Path] = true
	g.Units = append(g.Units, Unit{Template: template, Path: n.Path, Source: source})
	return nil
}

func (g *Generator) generateModule() error {
	seen := make(map[string]bool)
	prefixes := make([]string, 0)
	root := g.Opts.Root()
	for _, u := range g.Units {
		rel, err := filepath.Rel(root, u.Path)
		if err != nil {
			continue
		}
		prefix, _, found := strings.Cut(filepath.ToSlash(rel), "/")
		if !found || seen[prefix] {
			continue
		}
		seen[prefix] = true
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	path := filepath.Join(root, g.Opts.ModuleName+moduleExt)
	g.log.With("file", path).Info("generating module")
	return g.emit(render.TemplateModule, resolve.Naming{Path: path}, render.ModuleContext{
		ModuleName: g.Opts.ModuleName,
		Namespace:  g.Opts.Namespace,
		Prefixes:   prefixes,
	}, g.Opts.ModuleName)
}

// GeneratePom renders the project descriptor into PomDir. The version comes
// from Options.Version, else package.json "pom.version", else "version".
func (g *Generator) GeneratePom() error {
	pkg := readPackageJSON(filepath.Join(g.Opts.PomDir, "package.json"))
	version := g.Opts.Version
	if version == "" {
		if pom, ok := pkg["pom"].(map[string]any); ok {
			version, _ = pom["version"].(string)
		}
	}
	if version == "" {
		version = pkg.String("version")
	}
	if !semver.IsValid("v" + strings.TrimPrefix(version, "v")) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	artifact := pkg.Name()
	if artifact == "" {
		artifact = strings.ToLower(g.Opts.ModuleName)
	}
	name := pkg.Name()
	if name == "" {
		name = g.Opts.ModuleName
	}
	path := filepath.Join(g.Opts.PomDir, pomFile)
	return g.emit(render.TemplatePom, resolve.Naming{Path: path}, render.ProjectContext{
		GroupID:     g.Opts.Namespace,
		ArtifactID:  artifact,
		Version:     strings.TrimPrefix(version, "v"),
		Name:        name,
		Description: pkg.String("description"),
		ModuleName:  g.Opts.ModuleName,
		Namespace:   g.Opts.Namespace,
	}, pomFile)
}

func readPackageJSON(path string) model.PackageMetadata {
	pkg := model.PackageMetadata{}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkg
	}
	if err = json.Unmarshal(data, &pkg); err != nil {
		return model.PackageMetadata{}
	}
	return pkg
}
