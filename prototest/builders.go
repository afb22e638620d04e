// Package prototest builds descriptors for tests without invoking protoc.
//
// Builders return plain descriptorpb values so tests can tweak any field that
// the helpers do not cover.
package prototest

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileBuilder assembles a FileDescriptorProto.
type FileBuilder struct {
	file *descriptorpb.FileDescriptorProto
}

// NewFile starts a proto3 file with the given name and package.
func NewFile(name, pkg string) *FileBuilder {
	f := &descriptorpb.FileDescriptorProto{
		Name:   proto.String(name),
		Syntax: proto.String("proto3"),
	}
	if pkg != "" {
		f.Package = proto.String(pkg)
	}
	return &FileBuilder{file: f}
}

// Syntax overrides the file syntax ("proto2", "proto3" or "editions").
func (b *FileBuilder) Syntax(syntax string) *FileBuilder {
	b.file.Syntax = proto.String(syntax)
	return b
}

// Dependency records an import.
func (b *FileBuilder) Dependency(names ...string) *FileBuilder {
	b.file.Dependency = append(b.file.Dependency, names...)
	return b
}

// Message appends top-level messages.
func (b *FileBuilder) Message(msgs ...*descriptorpb.DescriptorProto) *FileBuilder {
	b.file.MessageType = append(b.file.MessageType, msgs...)
	return b
}

// Enum appends top-level enums.
func (b *FileBuilder) Enum(enums ...*descriptorpb.EnumDescriptorProto) *FileBuilder {
	b.file.EnumType = append(b.file.EnumType, enums...)
	return b
}

// Service appends services.
func (b *FileBuilder) Service(services ...*descriptorpb.ServiceDescriptorProto) *FileBuilder {
	b.file.Service = append(b.file.Service, services...)
	return b
}

// Comment attaches comments to the declaration at path. Pass "" to leave the
// leading or trailing comment unset.
func (b *FileBuilder) Comment(path []int32, leading, trailing string, detached ...string) *FileBuilder {
	if b.file.SourceCodeInfo == nil {
		b.file.SourceCodeInfo = &descriptorpb.SourceCodeInfo{}
	}
	loc := &descriptorpb.SourceCodeInfo_Location{
		Path:                    path,
		Span:                    []int32{0, 0, 0},
		LeadingDetachedComments: detached,
	}
	if leading != "" {
		loc.LeadingComments = proto.String(leading)
	}
	if trailing != "" {
		loc.TrailingComments = proto.String(trailing)
	}
	b.file.SourceCodeInfo.Location = append(b.file.SourceCodeInfo.Location, loc)
	return b
}

// Build returns the assembled descriptor.
func (b *FileBuilder) Build() *descriptorpb.FileDescriptorProto {
	return b.file
}

// -----------------------------------------------------------------------------
// Messages and Fields
// -----------------------------------------------------------------------------

// Message creates a message with the given fields.
func Message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

// Nested adds nested messages to msg and returns it.
func Nested(msg *descriptorpb.DescriptorProto, nested ...*descriptorpb.DescriptorProto) *descriptorpb.DescriptorProto {
	msg.NestedType = append(msg.NestedType, nested...)
	return msg
}

// NestedEnum adds nested enums to msg and returns it.
func NestedEnum(msg *descriptorpb.DescriptorProto, enums ...*descriptorpb.EnumDescriptorProto) *descriptorpb.DescriptorProto {
	msg.EnumType = append(msg.EnumType, enums...)
	return msg
}

// Oneof declares oneofs on msg, in order, and returns it. Member fields point
// at their oneof with InOneof.
func Oneof(msg *descriptorpb.DescriptorProto, names ...string) *descriptorpb.DescriptorProto {
	for _, name := range names {
		msg.OneofDecl = append(msg.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(name)})
	}
	return msg
}

// Scalar creates a singular field of a non-message type.
func Scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
		JsonName: proto.String(name),
	}
}

// String creates a singular string field.
func String(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return Scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_STRING)
}

// Int32 creates a singular int32 field.
func Int32(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return Scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_INT32)
}

// Bytes creates a singular bytes field.
func Bytes(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return Scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_BYTES)
}

// MessageField creates a singular field referencing a message by its
// fully-qualified name.
func MessageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := Scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

// EnumField creates a singular field referencing an enum by its
// fully-qualified name.
func EnumField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := Scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	f.TypeName = proto.String(typeName)
	return f
}

// Repeated marks f as repeated and returns it.
func Repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

// InOneof makes f a member of the oneof at index and returns it.
func InOneof(f *descriptorpb.FieldDescriptorProto, index int32) *descriptorpb.FieldDescriptorProto {
	f.OneofIndex = proto.Int32(index)
	return f
}

// Proto3Optional marks f as a proto3 optional field backed by the synthetic
// oneof at index and returns it.
func Proto3Optional(f *descriptorpb.FieldDescriptorProto, index int32) *descriptorpb.FieldDescriptorProto {
	f.Proto3Optional = proto.Bool(true)
	return InOneof(f, index)
}

// MapEntry creates the synthetic entry message of a map field.
func MapEntry(name string, key, value *descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	key.Name, key.Number, key.JsonName = proto.String("key"), proto.Int32(1), proto.String("key")
	value.Name, value.Number, value.JsonName = proto.String("value"), proto.Int32(2), proto.String("value")
	return &descriptorpb.DescriptorProto{
		Name:    proto.String(name),
		Field:   []*descriptorpb.FieldDescriptorProto{key, value},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}

// MapField creates the repeated field that refers to a map entry.
func MapField(name string, number int32, entryTypeName string) *descriptorpb.FieldDescriptorProto {
	return Repeated(MessageField(name, number, entryTypeName))
}

// -----------------------------------------------------------------------------
// Enums and Services
// -----------------------------------------------------------------------------

// Value creates an enum value.
func Value(name string, number int32) *descriptorpb.EnumValueDescriptorProto {
	return &descriptorpb.EnumValueDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
	}
}

// Enum creates an enum with the given values.
func Enum(name string, values ...*descriptorpb.EnumValueDescriptorProto) *descriptorpb.EnumDescriptorProto {
	return &descriptorpb.EnumDescriptorProto{
		Name:  proto.String(name),
		Value: values,
	}
}

// Method creates a unary method.
func Method(name, inputType, outputType string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(inputType),
		OutputType: proto.String(outputType),
	}
}

// Streaming marks m as client and/or server streaming and returns it.
func Streaming(m *descriptorpb.MethodDescriptorProto, client, server bool) *descriptorpb.MethodDescriptorProto {
	if client {
		m.ClientStreaming = proto.Bool(true)
	}
	if server {
		m.ServerStreaming = proto.Bool(true)
	}
	return m
}

// Service creates a service with the given methods.
func Service(name string, methods ...*descriptorpb.MethodDescriptorProto) *descriptorpb.ServiceDescriptorProto {
	return &descriptorpb.ServiceDescriptorProto{
		Name:   proto.String(name),
		Method: methods,
	}
}
