package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlField mirrors one field entry in a declarative schema file.
type yamlField struct {
	Type      string    `yaml:"type"`
	Required  bool      `yaml:"required"`
	Unique    bool      `yaml:"unique"`
	Array     bool      `yaml:"array"`
	Min       *float64  `yaml:"min"`
	Max       *float64  `yaml:"max"`
	MinDate   string    `yaml:"min_date"`
	MaxDate   string    `yaml:"max_date"`
	MinLength *int      `yaml:"min_length"`
	MaxLength *int      `yaml:"max_length"`
	Match     string    `yaml:"match"`
	Enum      []string  `yaml:"enum"`
	Default   any       `yaml:"default"`
	Ref       string    `yaml:"ref"`
	Fields    yaml.Node `yaml:"fields"`
}

type yamlSchema struct {
	Name   string    `yaml:"name"`
	Fields yaml.Node `yaml:"fields"`
}

// LoadFile reads a declarative schema from a YAML file:
//
//	name: user
//	fields:
//	  name: {type: string, required: true}
//	  age: {type: number, min: 18, max: 65}
//	  profile:
//	    type: object
//	    fields:
//	      bio: {type: string}
//
// Field order follows the order keys appear in the file.
func LoadFile(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(content)
}

// LoadDir loads every .yaml/.yml schema file in a directory, sorted by
// file name for consistent ordering.
func LoadDir(dir string) ([]*Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".yaml") || strings.HasSuffix(entry.Name(), ".yml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var schemas []*Schema
	for _, name := range names {
		s, err := LoadFile(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// Parse decodes a single YAML schema document.
func Parse(content []byte) (*Schema, error) {
	var raw yamlSchema
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("schema file has no name")
	}

	fields, err := decodeFields(raw.Fields)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", raw.Name, err)
	}

	s := &Schema{Name: raw.Name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeFields walks a YAML mapping node directly so declaration order is
// preserved (a plain map would lose it). A zero node means the key was
// absent from the file.
func decodeFields(node yaml.Node) ([]*Field, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fields must be a mapping")
	}

	var fields []*Field
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var yf yamlField
		if err := node.Content[i+1].Decode(&yf); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		f := &Field{
			Name:      name,
			Type:      yf.Type,
			Required:  yf.Required,
			Unique:    yf.Unique,
			IsArray:   yf.Array,
			Min:       yf.Min,
			Max:       yf.Max,
			MinLength: yf.MinLength,
			MaxLength: yf.MaxLength,
			Match:     yf.Match,
			Enum:      yf.Enum,
			Default:   yf.Default,
			Ref:       yf.Ref,
		}
		if yf.MinDate != "" {
			t, err := time.Parse(time.RFC3339, yf.MinDate)
			if err != nil {
				return nil, fmt.Errorf("field %s: invalid min_date: %w", name, err)
			}
			f.MinDate = &t
		}
		if yf.MaxDate != "" {
			t, err := time.Parse(time.RFC3339, yf.MaxDate)
			if err != nil {
				return nil, fmt.Errorf("field %s: invalid max_date: %w", name, err)
			}
			f.MaxDate = &t
		}
		if yf.Fields.Kind != 0 {
			sub, err := decodeFields(yf.Fields)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			f.Fields = sub
		}
		fields = append(fields, f)
	}
	return fields, nil
}
