package render

import (
	"reflect"

	"github.com/cmmoran/elementgen/internal/model"
)

// ItemContext feeds the Element, Behavior and Widget templates.
type ItemContext struct {
	Namespace     string
	Package       string
	Prefix        string
	ClassName     string
	BaseClassName string
	HasBase       bool

	Name        string
	TagName     string
	Description string
	Superclass  string
	Path        string
	IsBehavior  bool

	Properties []model.Property
	Methods    []model.Method
	Events     []model.Event
	Behaviors  []string
	Descriptor model.PackageMetadata
}

// EventContext feeds the ElementEvent, WidgetEvent and WidgetEventHandler
// templates.
type EventContext struct {
	Namespace     string
	Package       string
	Prefix        string
	ClassName     string
	BaseClassName string
	HasBase       bool

	Name        string
	Description string
	Params      []model.Param
	Owner       string
	Descriptor  model.PackageMetadata
}

// ModuleContext feeds the module descriptor template.
type ModuleContext struct {
	ModuleName string
	Namespace  string
	Prefixes   []string
}

// ProjectContext feeds the project descriptor template.
type ProjectContext struct {
	GroupID     string
	ArtifactID  string
	Version     string
	Name        string
	Description string
	ModuleName  string
	Namespace   string
}

// Template names understood by the generator.
const (
	TemplateElement            = "Element"
	TemplateBehavior           = "Behavior"
	TemplateElementEvent       = "ElementEvent"
	TemplateWidget             = "Widget"
	TemplateWidgetEvent        = "WidgetEvent"
	TemplateWidgetEventHandler = "WidgetEventHandler"
	TemplateModule             = "Module"
	TemplatePom                = "Pom"
)

var (
	itemContextType    = reflect.TypeOf(ItemContext{})
	eventContextType   = reflect.TypeOf(EventContext{})
	moduleContextType  = reflect.TypeOf(ModuleContext{})
	projectContextType = reflect.TypeOf(ProjectContext{})

	// contextTypes pins each known template to the only context it accepts.
	contextTypes = map[string]reflect.Type{
		TemplateElement:            itemContextType,
		TemplateBehavior:           itemContextType,
		TemplateWidget:             itemContextType,
		TemplateElementEvent:       eventContextType,
		TemplateWidgetEvent:        eventContextType,
		TemplateWidgetEventHandler: eventContextType,
		TemplateModule:             moduleContextType,
		TemplatePom:                projectContextType,
	}
)

// ExpectedContext reports the context type registered for a template name.
func ExpectedContext(name string) (reflect.Type, bool) {
	t, ok := contextTypes[name]
	return t, ok
}
