package resolve

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmmoran/elementgen/internal/model"
)

const (
	// BaseSuffix is appended to a class name to reference a hand written
	// base class the generated one may extend.
	BaseSuffix = "Base"
	// WrapperSuperclass replaces known UI primitive superclasses.
	WrapperSuperclass = "Polymer"
)

var (
	eventSuffix     = regexp.MustCompile(`^Event`)
	standardVendors = regexp.MustCompile(`^(polymer|iron|paper|neon)-`)

	primitiveSuperclasses = map[string]bool{
		"Polymer.Element": true,
		"HTMLElement":     true,
	}
)

// Subject is what the namer needs to know about an item or event.
type Subject struct {
	Name    string
	Path    string
	Package model.PackageMetadata
	Suffix  string // e.g. "Element", "Event", "EventHandler"
	Dir     string // output sub directory, slash separated, may be empty
}

// Naming is the resolved identity of one generated unit.
type Naming struct {
	Prefix        string
	Namespace     string
	Package       string // Namespace plus the output sub directory
	ClassName     string
	BaseClassName string
	Path          string
}

// Namer derives namespaces, class names and output paths. Root is the
// directory generated packages are written under and Namespace the package
// matching it.
type Namer struct {
	Namespace string
	Root      string
	Ext       string
}

// Resolve is deterministic: equal subjects always give equal namings.
func (n Namer) Resolve(s Subject) Naming {
	prefix := Prefix(s)
	className := CamelCase(s.Name) + s.Suffix
	ns := n.Namespace + "." + prefix
	pkg := ns
	for _, seg := range strings.Split(s.Dir, "/") {
		if seg != "" {
			pkg += "." + seg
		}
	}
	return Naming{
		Prefix:        prefix,
		Namespace:     ns,
		Package:       pkg,
		ClassName:     className,
		BaseClassName: className + BaseSuffix,
		Path:          filepath.Join(n.Root, prefix, filepath.FromSlash(s.Dir), className+n.Ext),
	}
}

// Prefix picks the namespace segment for a subject. Standard vendor events
// use their own name, then the package descriptor name, the folder holding
// the source file and finally the name are tried. An npm scope is dropped and
// only the text before the first hyphen is kept, without dots.
func Prefix(s Subject) string {
	var source string
	switch {
	case eventSuffix.MatchString(s.Suffix) && standardVendors.MatchString(s.Name):
		source = s.Name
	case s.Package.Name() != "":
		source = s.Package.Name()
	case parentDir(s.Path) != "":
		source = parentDir(s.Path)
	default:
		source = s.Name
	}
	if strings.HasPrefix(source, "@") {
		source = source[strings.LastIndex(source, "/")+1:]
	}
	source, _, _ = strings.Cut(source, "-")
	return strings.ReplaceAll(source, ".", "")
}

// parentDir returns the penultimate segment of a slash separated path.
func parentDir(p string) string {
	segs := strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
	if len(segs) < 2 {
		return ""
	}
	return segs[len(segs)-2]
}

// CamelCase turns "paper-button" or "paperButton" into "PaperButton".
func CamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	titler := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(titler.String(w))
	}
	return b.String()
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// SubstituteSuperclass maps known UI primitives to WrapperSuperclass.
func SubstituteSuperclass(superclass string) string {
	if primitiveSuperclasses[superclass] {
		return WrapperSuperclass
	}
	return superclass
}

// MarkDuplicateAccessors flags methods like getValue/setValue that mirror a
// property named value. Methods are returned as a new slice.
func MarkDuplicateAccessors(props []model.Property, methods []model.Method) []model.Method {
	names := make(map[string]bool, len(props))
	for _, p := range props {
		names[p.Name] = true
	}
	out := make([]model.Method, len(methods))
	for i, m := range methods {
		out[i] = m
		out[i].Duplicate = names[accessorTarget(m.Name)]
	}
	return out
}

func accessorTarget(method string) string {
	switch {
	case strings.HasPrefix(method, "get"):
		method = strings.TrimPrefix(method, "get")
	case strings.HasPrefix(method, "set"):
		method = strings.TrimPrefix(method, "set")
	}
	return LowerFirst(method)
}
