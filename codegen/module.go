package codegen

import (
	"fmt"
	"slices"
	"strings"
)

// Module is a Rust module path derived from a proto package.
type Module struct {
	parts []string
}

// ModuleFromPackage converts a dotted proto package into a Module. Each
// component is snake_cased; empty components are ignored. Keywords are only
// escaped where the module is declared, never in file names.
func ModuleFromPackage(pkg string) Module {
	var parts []string
	for _, part := range strings.Split(pkg, ".") {
		if part != "" {
			parts = append(parts, snakeCase(part))
		}
	}
	return Module{parts: parts}
}

// Parts returns the module path components.
func (m Module) Parts() []string {
	return slices.Clone(m.parts)
}

// Len returns the number of components.
func (m Module) Len() int {
	return len(m.parts)
}

// IsEmpty reports whether the module is the crate root (no package).
func (m Module) IsEmpty() bool {
	return len(m.parts) == 0
}

// String returns the dotted module path.
func (m Module) String() string {
	return strings.Join(m.parts, ".")
}

// FileName returns the output file name of the module, using
// defaultName for the root module.
func (m Module) FileName(defaultName string) string {
	if m.IsEmpty() {
		return defaultName + ".rs"
	}
	return m.String() + ".rs"
}

// Compare orders modules lexicographically by component.
func (m Module) Compare(other Module) int {
	return slices.Compare(m.parts, other.parts)
}

func (m Module) hasPrefix(prefix []string) bool {
	return len(m.parts) >= len(prefix) && slices.Equal(m.parts[:len(prefix)], prefix)
}

// key is a comparable representation used for map lookups.
func (m Module) key() string {
	return strings.Join(m.parts, "\x00")
}

// WriteIncludes renders an include file that nests every module under its
// package path and includes its generated file.
//
// Modules sharing a prefix share the enclosing `pub mod` blocks, so the
// output only depends on the set of modules, not on their order.
func WriteIncludes(modules []Module, defaultName string) string {
	sorted := slices.Clone(modules)
	slices.SortFunc(sorted, Module.Compare)

	var buf strings.Builder
	line := func(depth int, s string) {
		writeIndent(&buf, depth)
		buf.WriteString(s)
		buf.WriteByte('\n')
	}

	var stack []string
	for _, module := range sorted {
		for !module.hasPrefix(stack) {
			stack = stack[:len(stack)-1]
			line(len(stack), "}")
		}
		for len(stack) < module.Len() {
			part := module.parts[len(stack)]
			line(len(stack), fmt.Sprintf("pub mod %s {", escapeSnake(part)))
			stack = append(stack, part)
		}
		line(len(stack), fmt.Sprintf("include!(%q);", module.FileName(defaultName)))
	}
	for depth := len(stack) - 1; depth >= 0; depth-- {
		line(depth, "}")
	}
	return buf.String()
}
