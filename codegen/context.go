package codegen

import (
	"log/slog"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Context is the state shared by the per-file generators of one run: the
// user configuration, the containment graph and the extern registry.
//
// It is built once per Generate call and is read-only while a file is walked,
// except for the configured ServiceGenerator which owns its own state.
type Context struct {
	config       *Config
	messageGraph *MessageGraph
	externPaths  *ExternPaths
	logger       *slog.Logger
}

// NewContext validates the extern paths of cfg and builds the shared state.
func NewContext(cfg *Config, graph *MessageGraph, logger *slog.Logger) (*Context, error) {
	externPaths, err := NewExternPaths(cfg.externPaths)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{
		config:       cfg,
		messageGraph: graph,
		externPaths:  externPaths,
		logger:       logger,
	}, nil
}

// ServiceGenerator returns the configured service emitter, or nil.
func (c *Context) ServiceGenerator() ServiceGenerator {
	return c.config.serviceGenerator
}

// ResolveExternIdent resolves a fully-qualified proto identifier through the
// extern registry.
func (c *Context) ResolveExternIdent(pbIdent string) (string, bool) {
	return c.externPaths.Resolve(pbIdent)
}

// TypeAttributes returns the attributes configured for the named type.
func (c *Context) TypeAttributes(fqTypeName string) []string {
	return c.config.typeAttributes.Get(fqTypeName)
}

// MessageAttributes returns the attributes configured for the named message.
func (c *Context) MessageAttributes(fqMessageName string) []string {
	return c.config.messageAttributes.Get(fqMessageName)
}

// EnumAttributes returns the attributes configured for the named enum.
func (c *Context) EnumAttributes(fqEnumName string) []string {
	return c.config.enumAttributes.Get(fqEnumName)
}

// FieldAttributes returns the attributes configured for the named field.
func (c *Context) FieldAttributes(fqMessageName, fieldName string) []string {
	return c.config.fieldAttributes.GetField(fqMessageName, fieldName)
}

// BytesType returns the bytes container of the named field.
func (c *Context) BytesType(fqMessageName, fieldName string) BytesType {
	t, _ := c.config.bytesType.GetFirstField(fqMessageName, fieldName)
	return t
}

// MapType returns the map container of the named field.
func (c *Context) MapType(fqMessageName, fieldName string) MapType {
	t, _ := c.config.mapType.GetFirstField(fqMessageName, fieldName)
	return t
}

// ShouldBoxMessageField reports whether a message field needs Box.
func (c *Context) ShouldBoxMessageField(fqMessageName string, field *descriptorpb.FieldDescriptorProto) bool {
	return c.shouldBox(fqMessageName, "", field)
}

// ShouldBoxOneofField reports whether a variant of a oneof needs Box. Boxed
// selectors address oneof members as "<message>.<oneof>.<field>".
func (c *Context) ShouldBoxOneofField(fqMessageName, oneofName string, field *descriptorpb.FieldDescriptorProto) bool {
	return c.shouldBox(fqMessageName, oneofName, field)
}

// shouldBox applies Box when the containment graph requires it or the user
// asked for it. Either reason yields a single Box.
func (c *Context) shouldBox(fqMessageName, oneofName string, field *descriptorpb.FieldDescriptorProto) bool {
	if field.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
		return false
	}
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		if c.messageGraph.IsNested(field.GetTypeName(), fqMessageName) {
			return true
		}
	}

	configPath := fqMessageName
	if oneofName != "" {
		configPath = fqMessageName + "." + oneofName
	}
	_, boxed := c.config.boxed.GetFirstField(configPath, field.GetName())
	return boxed
}

// ShouldDisableComments reports whether docs are suppressed for a type, or
// for one of its fields when fieldName is not empty.
func (c *Context) ShouldDisableComments(fqName, fieldName string) bool {
	if fieldName != "" {
		_, ok := c.config.disableComments.GetFirstField(fqName, fieldName)
		return ok
	}
	_, ok := c.config.disableComments.GetFirst(fqName)
	return ok
}

// ShouldSkipDebug reports whether the Debug derive is omitted for a type.
func (c *Context) ShouldSkipDebug(fqName string) bool {
	_, ok := c.config.skipDebug.GetFirst(fqName)
	return ok
}

// TypeNameDomain returns the type URL domain configured for a message.
func (c *Context) TypeNameDomain(fqMessageName string) (string, bool) {
	return c.config.typeNameDomains.GetFirst(fqMessageName)
}
