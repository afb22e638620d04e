// Package services provides ServiceGenerator implementations for
// codegen.
package services

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
)

// TraitGenerator emits one Rust trait per proto service and, once per
// package, a SERVICES constant listing the fully-qualified names of every
// service of that package.
//
// Example output for `service Greeting { rpc Hello(Message) returns (Response); }`:
//
//	pub trait Greeting {
//	    /// Fully-qualified name of the service.
//	    const NAME: &'static str = "helloworld.Greeting";
//	    type Error;
//	    fn hello(&self, request: Message) -> core::result::Result<Response, Self::Error>;
//	}
//
// Streaming requests and responses are exchanged as vectors of messages.
type TraitGenerator struct {
	logger *slog.Logger
	// packages holds the services seen per package until FinalizePackage.
	packages map[string][]string
}

// NewTraitGenerator creates a TraitGenerator. logger may be nil.
func NewTraitGenerator(logger *slog.Logger) *TraitGenerator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TraitGenerator{
		logger:   logger,
		packages: make(map[string][]string),
	}
}

var _ codegen.ServiceGenerator = (*TraitGenerator)(nil)

// Generate implements codegen.ServiceGenerator.
func (g *TraitGenerator) Generate(service codegen.Service, buf *strings.Builder) {
	fullName := service.ProtoName
	if service.Package != "" {
		fullName = service.Package + "." + service.ProtoName
	}
	g.packages[service.Package] = append(g.packages[service.Package], fullName)
	g.logger.Debug("generating service trait", "service", fullName, "methods", len(service.Methods))

	service.Comments.AppendWithIndent(0, buf)
	fmt.Fprintf(buf, "pub trait %s {\n", service.Name)
	buf.WriteString("    /// Fully-qualified name of the service.\n")
	fmt.Fprintf(buf, "    const NAME: &'static str = %q;\n", fullName)
	buf.WriteString("    type Error;\n")

	for _, m := range service.Methods {
		m.Comments.AppendWithIndent(1, buf)
		fmt.Fprintf(buf, "    fn %s(&self, request: %s) -> core::result::Result<%s, Self::Error>;\n",
			m.Name, streamOf(m.InputType, m.ClientStreaming), streamOf(m.OutputType, m.ServerStreaming))
	}
	buf.WriteString("}\n")
}

// Finalize implements codegen.ServiceGenerator. Traits are self-contained,
// so nothing is emitted per file.
func (g *TraitGenerator) Finalize(buf *strings.Builder) {}

// FinalizePackage implements codegen.ServiceGenerator.
func (g *TraitGenerator) FinalizePackage(pkg string, buf *strings.Builder) {
	names := g.packages[pkg]
	delete(g.packages, pkg)
	if len(names) == 0 {
		return
	}
	slices.Sort(names)

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	fmt.Fprintf(buf, "/// Services declared in package `%s`.\n", pkg)
	fmt.Fprintf(buf, "pub const SERVICES: &[&str] = &[%s];\n", strings.Join(quoted, ", "))
}

func streamOf(ty string, streaming bool) string {
	if streaming {
		return "alloc::vec::Vec<" + ty + ">"
	}
	return ty
}
