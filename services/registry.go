package services

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
)

// Factory creates a fresh ServiceGenerator.
type Factory func(logger *slog.Logger) codegen.ServiceGenerator

var registry = map[string]Factory{
	"trait": func(logger *slog.Logger) codegen.ServiceGenerator {
		return NewTraitGenerator(logger)
	},
}

// New returns the service generator registered under name.
func New(name string, logger *slog.Logger) (codegen.ServiceGenerator, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, codegen.NewConfigError("services", name, "unknown service generator, expected one of "+strings.Join(Names(), ", "))
	}
	return factory(logger), nil
}

// Names returns the registered generator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
