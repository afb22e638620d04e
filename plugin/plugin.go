// Package plugin implements the protoc plugin protocol for protoc-gen-scale.
//
// protogen is not used because it requires a Go import path for every file,
// which is meaningless for Rust output; requests and responses are handled
// with pluginpb directly.
package plugin

import (
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
)

// Editions files are accepted from proto2 through 2023; field presence is
// the only feature the generator reads.
const (
	SupportedFeatures = uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL |
		pluginpb.CodeGeneratorResponse_FEATURE_SUPPORTS_EDITIONS)
	MinimumEdition = descriptorpb.Edition_EDITION_PROTO2
	MaximumEdition = descriptorpb.Edition_EDITION_2023
)

// Plugin answers CodeGeneratorRequests.
type Plugin struct {
	// Version is reported in the debug log.
	Version string
	// Stderr receives log output. Nil discards it.
	Stderr io.Writer
}

// Run reads a CodeGeneratorRequest from r and writes the response to w.
// Generation failures are reported in the response; the returned error is
// only set when the request cannot be read or the response written.
func (p *Plugin) Run(r io.Reader, w io.Writer) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("unmarshal request: %w", err)
	}

	out, err := proto.Marshal(p.Generate(req))
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Generate produces the response for req.
func (p *Plugin) Generate(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(SupportedFeatures),
		MinimumEdition:    proto.Int32(int32(MinimumEdition)),
		MaximumEdition:    proto.Int32(int32(MaximumEdition)),
	}

	files, err := p.generate(req)
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	resp.File = files
	return resp
}

func (p *Plugin) generate(req *pluginpb.CodeGeneratorRequest) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	params, err := ParseParams(req.GetParameter())
	if err != nil {
		return nil, err
	}
	logger := p.logger(params.LogLevel)
	logger.Debug("protoc-gen-scale", "version", p.Version, "files", len(req.GetFileToGenerate()))

	cfg := codegen.NewConfig()
	if err := params.Apply(cfg, logger); err != nil {
		return nil, err
	}

	// --- Partition Files ---
	byName := make(map[string]*descriptorpb.FileDescriptorProto, len(req.GetProtoFile()))
	for _, f := range req.GetProtoFile() {
		byName[f.GetName()] = f
	}
	toGenerate := make(map[string]bool, len(req.GetFileToGenerate()))
	requests := make([]codegen.Request, 0, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("file to generate %q is missing from the request", name)
		}
		toGenerate[name] = true
		requests = append(requests, codegen.NewRequest(f))
	}
	var dependencies []*descriptorpb.FileDescriptorProto
	for _, f := range req.GetProtoFile() {
		if !toGenerate[f.GetName()] {
			dependencies = append(dependencies, f)
		}
	}

	result, err := codegen.Generate(cfg, requests,
		codegen.WithLogger(logger),
		codegen.WithDependencies(dependencies...),
	)
	if err != nil {
		return nil, err
	}

	files := make([]*pluginpb.CodeGeneratorResponse_File, 0, len(result.Modules)+1)
	for _, m := range result.Modules {
		files = append(files, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(m.FileName),
			Content: proto.String(m.Content),
		})
	}
	if result.IncludeFileName != "" {
		files = append(files, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(result.IncludeFileName),
			Content: proto.String(result.Include),
		})
	}
	return files, nil
}

func (p *Plugin) logger(level slog.Level) *slog.Logger {
	if p.Stderr == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(p.Stderr, &slog.HandlerOptions{Level: level}))
}
