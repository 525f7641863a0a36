package generator

import (
	"path/filepath"
	"slices"
	"strings"
)

const (
	DefaultNamespace  = "com.vaadin.polymer"
	DefaultModuleName = "Elements"
	DefaultExt        = ".java"
	DefaultManifest   = ".elementgen/manifest.yaml"
)

// Generation targets.
const (
	TargetElements     = "elements"
	TargetEvents       = "events"
	TargetWidgets      = "widgets"
	TargetWidgetEvents = "widget-events"
	TargetModule       = "module"
)

// AllTargets lists every target in generation order.
var AllTargets = []string{TargetElements, TargetEvents, TargetWidgets, TargetWidgetEvents, TargetModule}

// Options control analysis input, naming and output.
//
// InDir       – directory holding analyzer documents, one sub directory per component
// OutDir      – client source root; packages are written under OutDir/<namespace path>
// Namespace   – base package of generated classes
// ModuleName  – name of the module descriptor
// TemplateDir – optional directory whose templates override the built-in ones
// Ext         – extension of generated class files
// Workers     – number of concurrent analyses, 0 means GOMAXPROCS
// Targets     – subset of AllTargets to generate
// Manifest    – file recording what was generated
// Pom         – also render a project descriptor into PomDir
// Version     – project descriptor version, overrides package.json
type Options struct {
	InDir       string   `json:"in_dir,omitempty" yaml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir      string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Namespace   string   `json:"namespace,omitempty" yaml:"namespace,omitempty" mapstructure:"namespace,omitempty"`
	ModuleName  string   `json:"module_name,omitempty" yaml:"module_name,omitempty" mapstructure:"module_name,omitempty"`
	TemplateDir string   `json:"template_dir,omitempty" yaml:"template_dir,omitempty" mapstructure:"template_dir,omitempty"`
	Ext         string   `json:"ext,omitempty" yaml:"ext,omitempty" mapstructure:"ext,omitempty"`
	Workers     int      `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers,omitempty"`
	Targets     []string `json:"targets,omitempty" yaml:"targets,omitempty" mapstructure:"targets,omitempty"`
	Manifest    string   `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Pom         bool     `json:"pom,omitempty" yaml:"pom,omitempty" mapstructure:"pom,omitempty"`
	PomDir      string   `json:"pom_dir,omitempty" yaml:"pom_dir,omitempty" mapstructure:"pom_dir,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:      ".",
		OutDir:     "src/main/java",
		Namespace:  DefaultNamespace,
		ModuleName: DefaultModuleName,
		Ext:        DefaultExt,
		Targets:    slices.Clone(AllTargets),
		Manifest:   DefaultManifest,
		PomDir:     ".",
	}
}

// Normalize fills defaults and cleans paths.
func (o *Options) Normalize() {
	if o.InDir == "" {
		o.InDir = "."
	}
	if o.OutDir == "" {
		o.OutDir = "src/main/java"
	}
	o.InDir = filepath.Clean(o.InDir)
	o.OutDir = filepath.Clean(o.OutDir)
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	o.Namespace = strings.Trim(o.Namespace, ".")
	if o.ModuleName == "" {
		o.ModuleName = DefaultModuleName
	}
	if o.Ext == "" {
		o.Ext = DefaultExt
	}
	if !strings.HasPrefix(o.Ext, ".") {
		o.Ext = "." + o.Ext
	}
	if len(o.Targets) == 0 {
		o.Targets = slices.Clone(AllTargets)
	}
	for i, t := range o.Targets {
		o.Targets[i] = strings.ToLower(strings.TrimSpace(t))
	}
	if o.PomDir == "" {
		o.PomDir = "."
	}
}

// Root is the directory matching Namespace under OutDir.
func (o *Options) Root() string {
	return filepath.Join(o.OutDir, filepath.FromSlash(strings.ReplaceAll(o.Namespace, ".", "/")))
}

// Wants reports whether target is enabled.
func (o *Options) Wants(target string) bool {
	return slices.Contains(o.Targets, target)
}

// NeedsModule reports whether a module descriptor must be generated, which is
// the case whenever the module name or namespace differ from the defaults.
func (o *Options) NeedsModule() bool {
	return o.ModuleName != DefaultModuleName || o.Namespace != DefaultNamespace
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option       { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option      { return func(o *Options) { o.OutDir = d } }
func WithNamespace(ns string) Option  { return func(o *Options) { o.Namespace = ns } }
func WithModuleName(n string) Option  { return func(o *Options) { o.ModuleName = n } }
func WithTemplateDir(d string) Option { return func(o *Options) { o.TemplateDir = d } }
func WithExt(e string) Option         { return func(o *Options) { o.Ext = e } }
func WithWorkers(n int) Option        { return func(o *Options) { o.Workers = n } }
func WithManifest(p string) Option    { return func(o *Options) { o.Manifest = p } }
func WithVersion(v string) Option     { return func(o *Options) { o.Version = v } }
func WithTargets(ts ...string) Option { return func(o *Options) { o.Targets = slices.Clone(ts) } }
func WithPom(dir string) Option       { return func(o *Options) { o.Pom, o.PomDir = true, dir } }
