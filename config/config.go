// Package config loads generator overrides from a YAML file.
//
// A configuration file mirrors the codegen.Config builder methods:
//
//	btree_map: [".my.pkg"]
//	bytes: ["Blob.data"]
//	boxed: [".my.pkg.Tree.left"]
//	field_attributes:
//	  - path: "Person.name"
//	    attribute: "#[codec(compact)]"
//	extern_paths:
//	  - proto: ".google.protobuf"
//	    rust: "::scale_types"
//	derive_debug: true
//	services: trait
//
// Files are read as YAML, normalised to JSON and validated against a JSON
// Schema inferred from File before being decoded, so typos in keys and
// wrong value types are reported with their location.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
	"github.com/alis-exchange/protoc-gen-scale/services"
)

// File is the on-disk configuration. Every list is applied in order, so the
// first matching selector wins for single-valued overrides.
type File struct {
	BTreeMap               []string             `json:"btree_map,omitempty"`
	Bytes                  []string             `json:"bytes,omitempty"`
	Boxed                  []string             `json:"boxed,omitempty"`
	DisableComments        []string             `json:"disable_comments,omitempty"`
	SkipDebug              []string             `json:"skip_debug,omitempty"`
	TypeAttributes         []Attribute          `json:"type_attributes,omitempty"`
	MessageAttributes      []Attribute          `json:"message_attributes,omitempty"`
	EnumAttributes         []Attribute          `json:"enum_attributes,omitempty"`
	FieldAttributes        []Attribute          `json:"field_attributes,omitempty"`
	TypeNameDomains        []TypeNameDomain     `json:"type_name_domains,omitempty"`
	ExternPaths            []codegen.ExternPath `json:"extern_paths,omitempty"`
	RetainEnumPrefix       bool                 `json:"retain_enum_prefix,omitempty"`
	DeriveDebug            bool                 `json:"derive_debug,omitempty"`
	DefaultPackageFilename string               `json:"default_package_filename,omitempty"`
	IncludeFile            string               `json:"include_file,omitempty"`
	// Services names a generator registered in the services package.
	Services string `json:"services,omitempty"`
}

// Attribute is one attribute line applied to declarations matching Path.
type Attribute struct {
	Path      string `json:"path"`
	Attribute string `json:"attribute"`
}

// TypeNameDomain sets the type URL domain of messages matching Paths.
type TypeNameDomain struct {
	Paths  []string `json:"paths"`
	Domain string   `json:"domain"`
}

// schema is the resolved JSON Schema of File.
var schema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("infer config schema: %w", err)
	}
	return s.Resolve(nil)
})

// Load reads and validates the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data, path)
}

// Parse validates and decodes a YAML (or JSON) configuration document.
func Parse(data []byte) (*File, error) {
	return parse(data, "")
}

func parse(data []byte, source string) (*File, error) {
	invalid := func(message string) error {
		return &codegen.ConfigError{Key: "config", Value: source, Message: message, Cause: codegen.ErrInvalidConfig}
	}

	// --- YAML to JSON ---
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(err.Error())
	}
	if doc == nil {
		return &File{}, nil
	}
	raw, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, invalid(err.Error())
	}

	// --- Schema Validation ---
	resolved, err := schema()
	if err != nil {
		return nil, err
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, invalid(err.Error())
	}
	if err := resolved.Validate(instance); err != nil {
		return nil, invalid(err.Error())
	}

	// --- Strict Decode ---
	var f File
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, invalid(err.Error())
	}
	return &f, nil
}

// normalize converts YAML-decoded values into JSON-compatible ones: maps
// with non-string keys are re-keyed by their printed form.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalize(vv)
		}
		return out
	default:
		return v
	}
}

// Apply adds every override of f to cfg. logger is handed to the service
// generator and may be nil.
func (f *File) Apply(cfg *codegen.Config, logger *slog.Logger) error {
	cfg.BTreeMap(f.BTreeMap...)
	cfg.Bytes(f.Bytes...)
	for _, p := range f.Boxed {
		cfg.Boxed(p)
	}
	cfg.DisableComments(f.DisableComments...)
	cfg.SkipDebug(f.SkipDebug...)
	for _, a := range f.TypeAttributes {
		cfg.TypeAttribute(a.Path, a.Attribute)
	}
	for _, a := range f.MessageAttributes {
		cfg.MessageAttribute(a.Path, a.Attribute)
	}
	for _, a := range f.EnumAttributes {
		cfg.EnumAttribute(a.Path, a.Attribute)
	}
	for _, a := range f.FieldAttributes {
		cfg.FieldAttribute(a.Path, a.Attribute)
	}
	for _, d := range f.TypeNameDomains {
		cfg.TypeNameDomain(d.Paths, d.Domain)
	}
	for _, e := range f.ExternPaths {
		cfg.ExternPath(e.ProtoPath, e.RustPath)
	}
	if f.RetainEnumPrefix {
		cfg.RetainEnumPrefix()
	}
	if f.DeriveDebug {
		cfg.DeriveDebug(true)
	}
	if f.DefaultPackageFilename != "" {
		cfg.DefaultPackageFilename(f.DefaultPackageFilename)
	}
	if f.IncludeFile != "" {
		cfg.IncludeFile(f.IncludeFile)
	}
	if f.Services != "" {
		sg, err := services.New(f.Services, logger)
		if err != nil {
			return err
		}
		cfg.ServiceGenerator(sg)
	}
	return nil
}
