// Package codegen turns Protocol Buffers descriptors into Rust type
// declarations that derive parity-scale-codec's Encode and Decode.
//
// # Architecture
//
// Generation runs in two phases:
//  1. Context construction: the user Config is validated, the extern path
//     registry is built and a containment graph of every message is computed.
//  2. File walk: each requested file is walked by a fileGenerator which emits
//     messages, enums, oneofs and (through a ServiceGenerator) services into
//     the buffer of the Rust module derived from the file's package.
//
// # Overrides
//
// Every override category (map and bytes containers, Box, attributes,
// comment suppression, Debug suppression, type URL domains) is keyed by
// selectors interpreted by PathMap. Single-valued categories take the first
// matching selector, attribute categories accumulate every match.
//
// # Determinism
//
// Output only depends on the descriptors and the Config. Modules are emitted
// in sorted order and no map iteration order leaks into generated text, so
// repeated runs produce byte-identical files.
package codegen

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by protoc-gen-scale. DO NOT EDIT."

// preamble is written once at the top of every generated module.
const preamble = "extern crate alloc;\nuse parity_scale_codec::{Decode, Encode};\n\n"

// -----------------------------------------------------------------------------
// Requests, Results and Options
// -----------------------------------------------------------------------------

// Request is one proto file to generate into the given module.
type Request struct {
	Module Module
	File   *descriptorpb.FileDescriptorProto
}

// NewRequest creates a Request targeting the module of the file's package.
func NewRequest(file *descriptorpb.FileDescriptorProto) Request {
	return Request{Module: ModuleFromPackage(file.GetPackage()), File: file}
}

// GeneratedModule is the Rust source of one module.
type GeneratedModule struct {
	Module   Module
	FileName string
	Content  string
}

// Result is the output of Generate.
type Result struct {
	// Modules are sorted by module path. Modules without any declaration are
	// omitted.
	Modules []GeneratedModule
	// IncludeFileName and Include are set when Config.IncludeFile was used.
	IncludeFileName string
	Include         string
}

// Option configures a Generate call.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	dependencies []*descriptorpb.FileDescriptorProto
}

// WithLogger sets the logger used for debug tracing of the walk.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDependencies adds files that are not generated but whose messages take
// part in containment analysis, such as imports in a protoc plugin request.
func WithDependencies(files ...*descriptorpb.FileDescriptorProto) Option {
	return func(o *options) {
		o.dependencies = append(o.dependencies, files...)
	}
}

// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

type moduleBuffer struct {
	module  Module
	pkg     string
	hasSvc  bool
	content strings.Builder
}

// Generate emits Rust code for every request.
//
// The generation process:
//  1. Validates the extern paths and builds the containment graph over the
//     requested files and any WithDependencies files
//  2. Generates each file, in request order, into the buffer of its module
//  3. Calls ServiceGenerator.FinalizePackage once for every package that
//     declared services
//  4. Drops empty modules and prefixes the rest with the generated header
//
// Configuration errors are reported before any file is generated. Schema
// errors abort generation.
func Generate(cfg *Config, requests []Request, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	files := make([]*descriptorpb.FileDescriptorProto, 0, len(requests)+len(o.dependencies))
	for _, req := range requests {
		files = append(files, req.File)
	}
	files = append(files, o.dependencies...)

	ctx, err := NewContext(cfg, NewMessageGraph(files...), o.logger)
	if err != nil {
		return nil, err
	}

	// --- Generate Files ---
	buffers := make(map[string]*moduleBuffer)
	for _, req := range requests {
		key := req.Module.key()
		mb, ok := buffers[key]
		if !ok {
			mb = &moduleBuffer{module: req.Module, pkg: req.File.GetPackage()}
			buffers[key] = mb
		}
		if len(req.File.GetService()) > 0 {
			mb.hasSvc = true
		}
		if err := generateFile(ctx, req.File, &mb.content); err != nil {
			return nil, fmt.Errorf("generate %s: %w", req.File.GetName(), err)
		}
	}

	sorted := make([]*moduleBuffer, 0, len(buffers))
	for _, mb := range buffers {
		sorted = append(sorted, mb)
	}
	slices.SortFunc(sorted, func(a, b *moduleBuffer) int {
		return a.module.Compare(b.module)
	})

	// --- Finalize Packages ---
	// Once per package, regardless of how many files declared services in it.
	if sg := ctx.ServiceGenerator(); sg != nil {
		for _, mb := range sorted {
			if mb.hasSvc {
				ctx.logger.Debug("finalizing package", "package", mb.pkg)
				sg.FinalizePackage(mb.pkg, &mb.content)
			}
		}
	}

	// --- Assemble Modules ---
	result := &Result{}
	var modules []Module
	for _, mb := range sorted {
		if mb.content.Len() == 0 {
			ctx.logger.Debug("skipping empty module", "module", mb.module.String())
			continue
		}
		result.Modules = append(result.Modules, GeneratedModule{
			Module:   mb.module,
			FileName: mb.module.FileName(cfg.defaultPackageFilename),
			Content:  GeneratedHeader + "\n" + preamble + mb.content.String(),
		})
		modules = append(modules, mb.module)
	}

	if cfg.includeFile != "" {
		result.IncludeFileName = cfg.includeFile
		result.Include = GeneratedHeader + "\n" + WriteIncludes(modules, cfg.defaultPackageFilename)
	}

	return result, nil
}

// -----------------------------------------------------------------------------
// File Generator
// -----------------------------------------------------------------------------

// fileGenerator is the emission cursor for one proto file.
//
// path mirrors the SourceCodeInfo path of the declaration being emitted and
// typePath the enclosing messages of the current Rust module. Both are
// pushed and popped in strict pairs so sibling declarations never observe
// each other's state.
type fileGenerator struct {
	ctx       *Context
	pkg       string
	syntax    string
	features  *descriptorpb.FeatureSet
	typePath  []string
	locations *LocationIndex
	depth     int
	path      []int32
	buf       *strings.Builder
}

type field struct {
	desc      *descriptorpb.FieldDescriptorProto
	pathIndex int32
}

type oneofField struct {
	desc      *descriptorpb.OneofDescriptorProto
	fields    []field
	pathIndex int32
}

type mapEntry struct {
	key   *descriptorpb.FieldDescriptorProto
	value *descriptorpb.FieldDescriptorProto
}

// Descriptor field numbers used in SourceCodeInfo paths.
const (
	fileMessageTypeTag   = 4
	fileEnumTypeTag      = 5
	fileServiceTag       = 6
	messageFieldTag      = 2
	messageNestedTypeTag = 3
	messageEnumTypeTag   = 4
	messageOneofDeclTag  = 8
	enumValueTag         = 2
	serviceMethodTag     = 2
)

func generateFile(ctx *Context, file *descriptorpb.FileDescriptorProto, buf *strings.Builder) error {
	g := &fileGenerator{
		ctx:       ctx,
		pkg:       file.GetPackage(),
		syntax:    file.GetSyntax(),
		features:  file.GetOptions().GetFeatures(),
		locations: NewLocationIndex(file.GetSourceCodeInfo()),
		buf:       buf,
	}
	ctx.logger.Debug("generating file", "file", file.GetName(), "package", g.pkg)

	for idx, msg := range file.GetMessageType() {
		if err := g.descend(func() error { return g.appendMessage(msg) }, fileMessageTypeTag, int32(idx)); err != nil {
			return err
		}
	}

	for idx, enum := range file.GetEnumType() {
		if err := g.descend(func() error { return g.appendEnum(enum) }, fileEnumTypeTag, int32(idx)); err != nil {
			return err
		}
	}

	sg := ctx.ServiceGenerator()
	if sg == nil {
		return nil
	}
	for idx, svc := range file.GetService() {
		_ = g.descend(func() error {
			g.pushService(sg, svc)
			return nil
		}, fileServiceTag, int32(idx))
	}
	sg.Finalize(buf)
	return nil
}

// descend runs fn with elems appended to the location path.
func (g *fileGenerator) descend(fn func() error, elems ...int32) error {
	n := len(g.path)
	g.path = append(g.path, elems...)
	err := fn()
	g.path = g.path[:n]
	return err
}

// indented runs fn one indentation level deeper.
func (g *fileGenerator) indented(fn func() error) error {
	g.depth++
	err := fn()
	g.depth--
	return err
}

// P writes an indented line made of the concatenated arguments.
func (g *fileGenerator) P(v ...any) {
	if len(v) > 0 {
		writeIndent(g.buf, g.depth)
		for _, x := range v {
			fmt.Fprint(g.buf, x)
		}
	}
	g.buf.WriteByte('\n')
}

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

// appendMessage emits the struct for a message followed by a module holding
// its nested messages, enums and oneof enums.
func (g *fileGenerator) appendMessage(msg *descriptorpb.DescriptorProto) error {
	messageName := msg.GetName()
	fqMessageName := g.fqName(messageName)

	// --- Skip External Types ---
	if _, ok := g.ctx.ResolveExternIdent(fqMessageName); ok {
		g.ctx.logger.Debug("skipping extern message", "message", fqMessageName)
		return nil
	}
	g.ctx.logger.Debug("message", "message", fqMessageName)

	// --- Partition Nested Types ---
	// Map entries are not emitted; they describe the key and value types of
	// map fields. Path indexes are preserved so comments can be found.
	type nestedType struct {
		desc      *descriptorpb.DescriptorProto
		pathIndex int32
	}
	var nestedTypes []nestedType
	mapTypes := make(map[string]mapEntry)
	for idx, nested := range msg.GetNestedType() {
		if !nested.GetOptions().GetMapEntry() {
			nestedTypes = append(nestedTypes, nestedType{desc: nested, pathIndex: int32(idx)})
			continue
		}
		entryName := fqMessageName + "." + nested.GetName()
		entry, err := newMapEntry(entryName, nested)
		if err != nil {
			return err
		}
		mapTypes[entryName] = entry
	}

	// --- Partition Fields ---
	// proto3 optional fields live in synthetic oneofs; they are emitted as
	// plain optional fields and their oneof is dropped.
	var fields []field
	oneofMembers := make(map[int32][]field)
	for idx, fd := range msg.GetField() {
		f := field{desc: fd, pathIndex: int32(idx)}
		if fd.GetProto3Optional() || fd.OneofIndex == nil {
			fields = append(fields, f)
			continue
		}
		oneofMembers[fd.GetOneofIndex()] = append(oneofMembers[fd.GetOneofIndex()], f)
	}
	var oneofs []oneofField
	for idx, od := range msg.GetOneofDecl() {
		if members, ok := oneofMembers[int32(idx)]; ok {
			oneofs = append(oneofs, oneofField{desc: od, fields: members, pathIndex: int32(idx)})
		}
	}

	// --- Struct Declaration ---
	g.appendDoc(fqMessageName, "")
	g.appendAttributes(g.ctx.TypeAttributes(fqMessageName))
	g.appendAttributes(g.ctx.MessageAttributes(fqMessageName))
	g.P(g.deriveLine(fqMessageName))
	g.P("pub struct ", ToUpperCamel(messageName), " {")
	err := g.indented(func() error {
		for _, f := range fields {
			err := g.descend(func() error {
				if entry, ok := mapTypes[f.desc.GetTypeName()]; ok {
					g.appendMapField(fqMessageName, f, entry)
				} else {
					g.appendField(fqMessageName, f)
				}
				return nil
			}, messageFieldTag, f.pathIndex)
			if err != nil {
				return err
			}
		}
		for _, oneof := range oneofs {
			_ = g.descend(func() error {
				g.appendOneofField(messageName, fqMessageName, oneof)
				return nil
			}, messageOneofDeclTag, oneof.pathIndex)
		}
		return nil
	})
	if err != nil {
		return err
	}
	g.P("}")

	g.appendTypeURL(fqMessageName, messageName)

	// --- Nested Module ---
	if len(msg.GetEnumType()) == 0 && len(nestedTypes) == 0 && len(oneofs) == 0 {
		return nil
	}
	return g.inModule(messageName, func() error {
		for _, nested := range nestedTypes {
			if err := g.descend(func() error { return g.appendMessage(nested.desc) }, messageNestedTypeTag, nested.pathIndex); err != nil {
				return err
			}
		}
		for idx, enum := range msg.GetEnumType() {
			if err := g.descend(func() error { return g.appendEnum(enum) }, messageEnumTypeTag, int32(idx)); err != nil {
				return err
			}
		}
		for _, oneof := range oneofs {
			g.appendOneof(fqMessageName, oneof)
		}
		return nil
	})
}

func newMapEntry(entryName string, msg *descriptorpb.DescriptorProto) (mapEntry, error) {
	fields := msg.GetField()
	if len(fields) != 2 || fields[0].GetName() != "key" || fields[1].GetName() != "value" {
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.GetName())
		}
		return mapEntry{}, &SchemaError{
			Path:    entryName,
			Message: fmt.Sprintf("map entry fields must be [key value], got %v", names),
			Cause:   ErrMalformedMapEntry,
		}
	}
	return mapEntry{key: fields[0], value: fields[1]}, nil
}

// inModule emits a `pub mod` for the nested types of a message and runs fn
// inside it.
func (g *fileGenerator) inModule(messageName string, fn func() error) error {
	g.P("/// Nested message and enum types in `", messageName, "`.")
	g.P("pub mod ", ToSnake(messageName), " {")
	g.typePath = append(g.typePath, messageName)
	err := g.indented(func() error {
		g.P("use super::*;")
		g.P()
		return fn()
	})
	g.typePath = g.typePath[:len(g.typePath)-1]
	g.P("}")
	return err
}

func (g *fileGenerator) appendField(fqMessageName string, f field) {
	name := f.desc.GetName()
	repeated := f.desc.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	optional := g.optional(f.desc)
	boxed := g.ctx.ShouldBoxMessageField(fqMessageName, f.desc)
	ty := g.resolveType(f.desc, fqMessageName)

	g.ctx.logger.Debug("field", "field", name, "type", ty, "boxed", boxed)

	g.appendDoc(fqMessageName, name)
	g.appendAttributes(g.ctx.FieldAttributes(fqMessageName, name))

	if boxed {
		ty = "alloc::boxed::Box<" + ty + ">"
	}
	switch {
	case repeated:
		ty = "alloc::vec::Vec<" + ty + ">"
	case optional:
		ty = "Option<" + ty + ">"
	}
	g.P("pub ", ToSnake(name), ": ", ty, ",")
}

func (g *fileGenerator) appendMapField(fqMessageName string, f field, entry mapEntry) {
	name := f.desc.GetName()
	keyType := g.resolveType(entry.key, fqMessageName)
	valueType := g.resolveType(entry.value, fqMessageName)

	g.ctx.logger.Debug("map field", "field", name, "key", keyType, "value", valueType)

	g.appendDoc(fqMessageName, name)
	g.appendAttributes(g.ctx.FieldAttributes(fqMessageName, name))
	mapType := g.ctx.MapType(fqMessageName, name)
	g.P("pub ", ToSnake(name), ": ", mapType.RustType(), "<", keyType, ", ", valueType, ">,")
}

// appendOneofField emits the struct field holding the oneof enum.
func (g *fileGenerator) appendOneofField(messageName, fqMessageName string, oneof oneofField) {
	name := oneof.desc.GetName()
	typeName := ToSnake(messageName) + "::" + ToUpperCamel(name)

	g.appendDoc(fqMessageName, name)
	g.appendAttributes(g.ctx.FieldAttributes(fqMessageName, name))
	g.P("pub ", ToSnake(name), ": Option<", typeName, ">,")
}

// appendOneof emits the enum of a oneof inside the message's module.
func (g *fileGenerator) appendOneof(fqMessageName string, oneof oneofField) {
	name := oneof.desc.GetName()
	oneofName := fqMessageName + "." + name

	_ = g.descend(func() error {
		g.appendDoc(fqMessageName, name)
		return nil
	}, messageOneofDeclTag, oneof.pathIndex)

	g.appendAttributes(g.ctx.TypeAttributes(oneofName))
	g.appendAttributes(g.ctx.EnumAttributes(oneofName))
	g.P(g.deriveLine(oneofName))
	g.P("pub enum ", ToUpperCamel(name), " {")
	_ = g.indented(func() error {
		for _, f := range oneof.fields {
			fieldName := f.desc.GetName()
			_ = g.descend(func() error {
				g.appendDoc(fqMessageName, fieldName)
				return nil
			}, messageFieldTag, f.pathIndex)
			g.appendAttributes(g.ctx.FieldAttributes(oneofName, fieldName))

			ty := g.resolveType(f.desc, fqMessageName)
			boxed := g.ctx.ShouldBoxOneofField(fqMessageName, name, f.desc)
			g.ctx.logger.Debug("oneof field", "field", fieldName, "type", ty, "boxed", boxed)
			if boxed {
				ty = "alloc::boxed::Box<" + ty + ">"
			}
			g.P(ToUpperCamel(fieldName), "(", ty, "),")
		}
		return nil
	})
	g.P("}")
}

// appendTypeURL emits the fully-qualified name and type URL of a message
// matched by a type name domain.
func (g *fileGenerator) appendTypeURL(fqMessageName, messageName string) {
	domain, ok := g.ctx.TypeNameDomain(fqMessageName)
	if !ok {
		return
	}
	fullName := strings.TrimPrefix(fqMessageName, ".")
	typeURL := strings.TrimSuffix(domain, "/") + "/" + fullName

	g.P("impl ", ToUpperCamel(messageName), " {")
	_ = g.indented(func() error {
		g.P("/// Fully-qualified Protobuf name of this message.")
		g.P("pub const FULL_NAME: &'static str = ", fmt.Sprintf("%q", fullName), ";")
		g.P("/// Type URL of this message.")
		g.P("pub const TYPE_URL: &'static str = ", fmt.Sprintf("%q", typeURL), ";")
		return nil
	})
	g.P("}")
}

// -----------------------------------------------------------------------------
// Enums
// -----------------------------------------------------------------------------

// appendEnum emits an enum with one variant per distinct value, followed by
// the name lookups in both directions.
func (g *fileGenerator) appendEnum(desc *descriptorpb.EnumDescriptorProto) error {
	protoEnumName := desc.GetName()
	enumName := ToUpperCamel(protoEnumName)
	fqEnumName := g.fqName(protoEnumName)

	if _, ok := g.ctx.ResolveExternIdent(fqEnumName); ok {
		g.ctx.logger.Debug("skipping extern enum", "enum", fqEnumName)
		return nil
	}
	g.ctx.logger.Debug("enum", "enum", fqEnumName)

	variants, err := buildEnumVariants(fqEnumName, enumName, g.ctx.config.stripEnumPrefix, desc.GetValue())
	if err != nil {
		return err
	}

	g.appendDoc(fqEnumName, "")
	g.appendAttributes(g.ctx.TypeAttributes(fqEnumName))
	g.appendAttributes(g.ctx.EnumAttributes(fqEnumName))
	g.P(g.deriveLine(fqEnumName))
	g.P("pub enum ", enumName, " {")
	_ = g.indented(func() error {
		for _, v := range variants {
			_ = g.descend(func() error {
				g.appendDoc(fqEnumName, v.protoName)
				return nil
			}, enumValueTag, v.pathIndex)
			g.appendAttributes(g.ctx.FieldAttributes(fqEnumName, v.protoName))
			g.P(v.variantName, " = ", v.number, ",")
		}
		return nil
	})
	g.P("}")

	// --- Name Lookups ---
	g.P("impl ", enumName, " {")
	_ = g.indented(func() error {
		g.P("/// String value of the enum field names used in the ProtoBuf definition.")
		g.P("///")
		g.P("/// The values are not transformed in any way and thus are considered stable")
		g.P("/// (if the ProtoBuf definition does not change) and safe for programmatic use.")
		g.P("pub fn as_str_name(&self) -> &'static str {")
		_ = g.indented(func() error {
			g.P("match self {")
			_ = g.indented(func() error {
				for _, v := range variants {
					g.P("Self::", v.variantName, " => ", fmt.Sprintf("%q", v.protoName), ",")
				}
				return nil
			})
			g.P("}")
			return nil
		})
		g.P("}")

		g.P("/// Creates an enum from field names used in the ProtoBuf definition.")
		g.P("pub fn from_str_name(value: &str) -> Option<Self> {")
		_ = g.indented(func() error {
			g.P("match value {")
			_ = g.indented(func() error {
				for _, v := range variants {
					g.P(fmt.Sprintf("%q", v.protoName), " => Some(Self::", v.variantName, "),")
				}
				g.P("_ => None,")
				return nil
			})
			g.P("}")
			return nil
		})
		g.P("}")
		return nil
	})
	g.P("}")
	return nil
}

// -----------------------------------------------------------------------------
// Services
// -----------------------------------------------------------------------------

// pushService converts a service descriptor and hands it to the emitter.
func (g *fileGenerator) pushService(sg ServiceGenerator, desc *descriptorpb.ServiceDescriptorProto) {
	name := desc.GetName()
	g.ctx.logger.Debug("service", "service", name)

	service := Service{
		Name:      ToUpperCamel(name),
		ProtoName: name,
		Package:   g.pkg,
		Comments:  g.comments(),
		Options:   desc.GetOptions(),
	}

	for idx, m := range desc.GetMethod() {
		g.ctx.logger.Debug("method", "method", m.GetName())
		var comments Comments
		_ = g.descend(func() error {
			comments = g.comments()
			return nil
		}, serviceMethodTag, int32(idx))

		service.Methods = append(service.Methods, Method{
			Name:            ToSnake(m.GetName()),
			ProtoName:       m.GetName(),
			Comments:        comments,
			InputType:       g.resolveIdent(m.GetInputType()),
			OutputType:      g.resolveIdent(m.GetOutputType()),
			InputProtoType:  m.GetInputType(),
			OutputProtoType: m.GetOutputType(),
			Options:         m.GetOptions(),
			ClientStreaming: m.GetClientStreaming(),
			ServerStreaming: m.GetServerStreaming(),
		})
	}

	sg.Generate(service, g.buf)
}

// -----------------------------------------------------------------------------
// Cursor Helpers
// -----------------------------------------------------------------------------

func (g *fileGenerator) comments() Comments {
	loc, ok := g.locations.Lookup(g.path)
	if !ok {
		return Comments{}
	}
	return CommentsFromLocation(loc)
}

// appendDoc emits the comments found at the current path unless they are
// disabled for fqName (or its field fieldName).
func (g *fileGenerator) appendDoc(fqName, fieldName string) {
	if g.ctx.ShouldDisableComments(fqName, fieldName) {
		return
	}
	g.comments().AppendWithIndent(g.depth, g.buf)
}

func (g *fileGenerator) appendAttributes(attributes []string) {
	for _, attr := range attributes {
		g.P(attr)
	}
}

func (g *fileGenerator) deriveLine(fqName string) string {
	if g.ctx.config.deriveDebug && !g.ctx.ShouldSkipDebug(fqName) {
		return "#[derive(Encode, Decode, Debug)]"
	}
	return "#[derive(Encode, Decode)]"
}

// fqName returns the fully-qualified proto name of a declaration in the
// current scope, starting with a dot.
func (g *fileGenerator) fqName(name string) string {
	var b strings.Builder
	if pkg := strings.Trim(g.pkg, "."); pkg != "" {
		b.WriteString(".")
		b.WriteString(pkg)
	}
	for _, t := range g.typePath {
		b.WriteString(".")
		b.WriteString(t)
	}
	b.WriteString(".")
	b.WriteString(name)
	return b.String()
}

// optional reports whether a singular field is emitted as Option<T>.
func (g *fileGenerator) optional(fd *descriptorpb.FieldDescriptorProto) bool {
	if fd.GetProto3Optional() {
		return true
	}
	if fd.GetLabel() != descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL {
		return false
	}
	if fd.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		return true
	}
	switch g.syntax {
	case "proto3":
		return false
	case "editions":
		presence := fd.GetOptions().GetFeatures().GetFieldPresence()
		if presence == descriptorpb.FeatureSet_FIELD_PRESENCE_UNKNOWN {
			presence = g.features.GetFieldPresence()
		}
		return presence != descriptorpb.FeatureSet_IMPLICIT && presence != descriptorpb.FeatureSet_LEGACY_REQUIRED
	default:
		return true
	}
}

// resolveType returns the Rust type of a field, ignoring its cardinality.
func (g *fileGenerator) resolveType(fd *descriptorpb.FieldDescriptorProto, fqMessageName string) string {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "f32"
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "f64"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "u32"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "u64"
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32, descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "i32"
	case descriptorpb.FieldDescriptorProto_TYPE_INT64, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "i64"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool"
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "alloc::string::String"
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return g.ctx.BytesType(fqMessageName, fd.GetName()).RustType()
	default:
		return g.resolveIdent(fd.GetTypeName())
	}
}

// resolveIdent returns the shortest Rust path to a proto type from the
// current module.
//
// The package and enclosing messages of the current scope are compared with
// the namespace of the target; the common prefix is dropped, each remaining
// local segment becomes `super` and the remaining target segments are
// appended in snake_case followed by the UpperCamelCase type name.
//
// Example: from module foo::bar, ".foo.baz.Qux" resolves to super::baz::Qux.
func (g *fileGenerator) resolveIdent(pbIdent string) string {
	// protoc always emits fully-qualified names; hand-built descriptors may not.
	if !strings.HasPrefix(pbIdent, ".") {
		pbIdent = "." + pbIdent
	}

	if rustPath, ok := g.ctx.ResolveExternIdent(pbIdent); ok {
		return rustPath
	}

	var localPath []string
	for _, segment := range strings.Split(g.pkg, ".") {
		if segment != "" {
			localPath = append(localPath, segment)
		}
	}
	localPath = append(localPath, g.typePath...)

	identPath := strings.Split(pbIdent[1:], ".")
	identType := identPath[len(identPath)-1]
	identPath = identPath[:len(identPath)-1]

	common := 0
	for common < len(localPath) && common < len(identPath) && localPath[common] == identPath[common] {
		common++
	}

	segments := make([]string, 0, len(localPath)-common+len(identPath)-common+1)
	for range localPath[common:] {
		segments = append(segments, "super")
	}
	for _, segment := range identPath[common:] {
		segments = append(segments, ToSnake(segment))
	}
	segments = append(segments, ToUpperCamel(identType))
	return strings.Join(segments, "::")
}
