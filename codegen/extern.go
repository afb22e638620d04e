package codegen

import (
	"fmt"
	"strings"
)

// ExternPath maps a fully-qualified proto path to an existing Rust path.
//
// Types under the proto path are not generated; references to them are
// rewritten to point under the Rust path instead.
type ExternPath struct {
	ProtoPath string `json:"proto" yaml:"proto"`
	RustPath  string `json:"rust" yaml:"rust"`
}

// ExternPaths resolves proto identifiers against registered extern paths.
type ExternPaths struct {
	paths map[string]string
}

// NewExternPaths validates and registers the given extern paths.
func NewExternPaths(paths []ExternPath) (*ExternPaths, error) {
	ep := &ExternPaths{paths: make(map[string]string, len(paths))}
	for _, p := range paths {
		if err := ep.insert(p.ProtoPath, p.RustPath); err != nil {
			return nil, err
		}
	}
	return ep, nil
}

func (ep *ExternPaths) insert(protoPath, rustPath string) error {
	if err := validateProtoPath(protoPath); err != nil {
		return err
	}
	if _, ok := ep.paths[protoPath]; ok {
		return &ConfigError{
			Key:     "extern_path",
			Value:   protoPath,
			Message: fmt.Sprintf("already mapped to %q", ep.paths[protoPath]),
			Cause:   ErrDuplicateExternPath,
		}
	}
	ep.paths[protoPath] = rustPath
	return nil
}

func validateProtoPath(path string) error {
	if !strings.HasPrefix(path, ".") {
		return &ConfigError{
			Key:     "extern_path",
			Value:   path,
			Message: "proto paths must be fully qualified (begin with a leading '.')",
			Cause:   ErrInvalidExternPath,
		}
	}
	for _, segment := range strings.Split(path, ".")[1:] {
		if segment == "" {
			return &ConfigError{
				Key:     "extern_path",
				Value:   path,
				Message: "fully-qualified proto path has an empty segment",
				Cause:   ErrInvalidExternPath,
			}
		}
	}
	return nil
}

// Resolve returns the Rust path for a fully-qualified proto identifier.
//
// An exact registration wins. Otherwise the longest registered ancestor is
// used and the remaining segments are appended: namespace segments in
// snake_case, the final type segment in UpperCamelCase.
func (ep *ExternPaths) Resolve(pbIdent string) (string, bool) {
	if rustPath, ok := ep.paths[pbIdent]; ok {
		return rustPath, true
	}

	for idx := strings.LastIndexByte(pbIdent, '.'); idx > 0; idx = strings.LastIndexByte(pbIdent[:idx], '.') {
		rustPath, ok := ep.paths[pbIdent[:idx]]
		if !ok {
			continue
		}

		remaining := strings.Split(pbIdent[idx+1:], ".")
		typeName := remaining[len(remaining)-1]

		var segments []string
		for i, segment := range strings.Split(rustPath, "::") {
			if i == 0 && segment == "crate" {
				segments = append(segments, segment)
				continue
			}
			segments = append(segments, ToSnake(segment))
		}
		for _, segment := range remaining[:len(remaining)-1] {
			segments = append(segments, ToSnake(segment))
		}
		segments = append(segments, ToUpperCamel(typeName))
		return strings.Join(segments, "::"), true
	}

	return "", false
}
