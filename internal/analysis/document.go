package analysis

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/elementgen/internal/model"
)

// RawItem is one element or behavior as written by the analyzer.
type RawItem struct {
	Name        string           `json:"name" yaml:"name"`
	TagName     string           `json:"tagname" yaml:"tagname"`
	Superclass  string           `json:"superclass" yaml:"superclass"`
	Description string           `json:"description" yaml:"description"`
	Properties  []model.Property `json:"properties" yaml:"properties"`
	Methods     []model.Method   `json:"methods" yaml:"methods"`
	Events      []model.Event    `json:"events" yaml:"events"`
	Behaviors   []string         `json:"behaviors" yaml:"behaviors"`
}

// Document is the analyzer output for a single component file.
type Document struct {
	Elements []RawItem `json:"elements" yaml:"elements"`
	Metadata struct {
		Polymer struct {
			Behaviors []RawItem `json:"behaviors" yaml:"behaviors"`
		} `json:"polymer" yaml:"polymer"`
	} `json:"metadata" yaml:"metadata"`
}

// DecodeDocument decodes JSON or YAML depending on the file extension of name.
func DecodeDocument(name string, data []byte) (*Document, error) {
	var doc Document
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	return &doc, nil
}
