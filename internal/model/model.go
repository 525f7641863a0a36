package model

import "strings"

// Kind tags an Item as either a concrete element or a behavior mixin.
type Kind int

const (
	KindElement Kind = iota
	KindBehavior
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindBehavior:
		return "behavior"
	default:
		return "unknown"
	}
}

// Privacy is the visibility reported by the analyzer for a member.
type Privacy string

const (
	PrivacyPublic    Privacy = "public"
	PrivacyProtected Privacy = "protected"
	PrivacyPrivate   Privacy = "private"
)

// PackageMetadata is the decoded package descriptor (bower.json / package.json)
// of the directory an item was analyzed from. It may be empty.
type PackageMetadata map[string]any

// Name returns the descriptor's "name" entry, or "" when absent.
func (p PackageMetadata) Name() string {
	if p == nil {
		return ""
	}
	s, _ := p["name"].(string)
	return s
}

// String returns the entry for key when it holds a string.
func (p PackageMetadata) String(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Return struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

type Property struct {
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Privacy     Privacy `json:"privacy,omitempty" yaml:"privacy,omitempty"`
	ReadOnly    bool    `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Notify      bool    `json:"notify,omitempty" yaml:"notify,omitempty"`
	Default     string  `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

type Method struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Privacy     Privacy `json:"privacy,omitempty" yaml:"privacy,omitempty"`
	Params      []Param `json:"params,omitempty" yaml:"params,omitempty"`
	Return      *Return `json:"return,omitempty" yaml:"return,omitempty"`

	// Duplicate marks a get/set method that mirrors an existing property.
	Duplicate bool `json:"-" yaml:"-"`
}

type Event struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []Param `json:"params,omitempty" yaml:"params,omitempty"`

	Package PackageMetadata `json:"-" yaml:"-"`
}

// TrimName returns the event name up to the first whitespace. Analyzers
// report names like "open (on success)".
func (e Event) TrimName() string {
	if i := strings.IndexFunc(e.Name, isSpace); i >= 0 {
		return e.Name[:i]
	}
	return e.Name
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// Item is a single analyzed element or behavior.
type Item struct {
	Kind        Kind
	Name        string
	TagName     string
	Description string
	Path        string // slash separated, relative to the analysis root
	Superclass  string

	Properties   []Property
	Methods      []Method
	Events       []Event
	BehaviorRefs []string

	Package PackageMetadata
}

func (i *Item) IsBehavior() bool { return i != nil && i.Kind == KindBehavior }

// Clone returns a copy of the item whose member slices can be modified
// without affecting the original.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Properties = append([]Property(nil), i.Properties...)
	c.Methods = append([]Method(nil), i.Methods...)
	c.Events = append([]Event(nil), i.Events...)
	c.BehaviorRefs = append([]string(nil), i.BehaviorRefs...)
	return &c
}
