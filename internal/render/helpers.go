package render

import (
	"strings"
	"text/template"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/elementgen/internal/resolve"
)

var javaTypes = map[string]string{
	"string":   "String",
	"number":   "double",
	"boolean":  "boolean",
	"array":    "JsArray",
	"object":   "JavaScriptObject",
	"function": "Function",
	"date":     "JsDate",
}

// JavaType maps an analyzer type expression to a Java type.
func JavaType(jsType string) string {
	t := strings.ToLower(strings.TrimSpace(jsType))
	t = strings.TrimPrefix(t, "!")
	t = strings.TrimPrefix(t, "?")
	if i := strings.IndexAny(t, "<|("); i >= 0 {
		t = t[:i]
	}
	if jt, ok := javaTypes[t]; ok {
		return jt
	}
	return "Object"
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// javadoc renders text as the body lines of a /** */ block.
func javadoc(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "*/", "*&#47;")
	if text == "" {
		return " *"
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(" * "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// Helpers is the function set available to every template.
func Helpers() template.FuncMap {
	return template.FuncMap{
		"camelCase":  resolve.CamelCase,
		"lowerFirst": resolve.LowerFirst,
		"upperFirst": upperFirst,
		"plural":     inflection.Plural,
		"singular":   inflection.Singular,
		"javaType":   JavaType,
		"getter":     func(name string) string { return "get" + resolve.CamelCase(name) },
		"setter":     func(name string) string { return "set" + resolve.CamelCase(name) },
		"javadoc":    javadoc,
	}
}
