package render

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"text/template"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("template parse failed")
	ErrTemplateExec     = errors.New("template execution failed")
	ErrContextMismatch  = errors.New("template context mismatch")
)

const defaultCacheSize = 64

// Renderer executes named templates against typed contexts. Parsed templates
// are cached for the life of the renderer.
type Renderer struct {
	source Source
	funcs  template.FuncMap
	cache  *lru.Cache[string, *template.Template]
}

func NewRenderer(source Source, cacheSize int) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, *template.Template](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		source: source,
		funcs:  Helpers(),
		cache:  cache,
	}, nil
}

// Render returns the text of template name executed with data. Known
// template names only accept their registered context type, and any field a
// template references must exist on the context.
func (r *Renderer) Render(name string, data any) (string, error) {
	if want, ok := ExpectedContext(name); ok {
		if got := reflect.TypeOf(data); got != want {
			return "", fmt.Errorf("%w: %s wants %s, got %v", ErrContextMismatch, name, want, got)
		}
	}
	tpl, err := r.template(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err = tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTemplateExec, name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) template(name string) (*template.Template, error) {
	if tpl, ok := r.cache.Get(name); ok {
		return tpl, nil
	}
	text, err := r.source.Lookup(name)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(name).Funcs(r.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateParse, name, err)
	}
	r.cache.Add(name, tpl)
	return tpl, nil
}
