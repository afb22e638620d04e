package codegen

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Service is the description of a proto service handed to a ServiceGenerator.
type Service struct {
	// Name is the Rust (UpperCamelCase) service name.
	Name string
	// ProtoName is the service name as declared in the proto file.
	ProtoName string
	// Package is the proto package declaring the service.
	Package  string
	Comments Comments
	Methods  []Method
	Options  *descriptorpb.ServiceOptions
}

// Method is one RPC of a Service.
type Method struct {
	// Name is the Rust (snake_case) method name.
	Name string
	// ProtoName is the method name as declared in the proto file.
	ProtoName string
	Comments  Comments
	// InputType and OutputType are Rust paths resolved from the top-level
	// scope of the file declaring the service.
	InputType  string
	OutputType string
	// InputProtoType and OutputProtoType are fully-qualified proto names.
	InputProtoType  string
	OutputProtoType string
	Options         *descriptorpb.MethodOptions
	ClientStreaming bool
	ServerStreaming bool
}

// ServiceGenerator turns proto services into Rust code.
//
// Generation calls Generate once per service, Finalize once per file after
// its services and FinalizePackage once per package that declares services,
// after every file of that package was generated. Implementations may keep
// state between calls; they are always invoked from a single goroutine.
type ServiceGenerator interface {
	Generate(service Service, buf *strings.Builder)
	Finalize(buf *strings.Builder)
	FinalizePackage(pkg string, buf *strings.Builder)
}
