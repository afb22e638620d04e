package plugin

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/alis-exchange/protoc-gen-scale/prototest"
)

// PluginTestSuite is the base test suite for plugin tests. It handles:
// - Finding the workspace root
// - Building the descriptor set shared by every test
// - Creating CodeGeneratorRequests and running the plugin over them
type PluginTestSuite struct {
	suite.Suite

	// workspaceRoot is the absolute path to the project root (where go.mod is)
	workspaceRoot string

	// fds holds the tutorial and helloworld files
	fds *descriptorpb.FileDescriptorSet

	// stderr collects the plugin's log output for the current test
	stderr *bytes.Buffer
}

// SetupSuite runs once before all tests in the suite.
func (s *PluginTestSuite) SetupSuite() {
	s.workspaceRoot = s.findWorkspaceRoot()

	files := append([]*descriptorpb.FileDescriptorProto{prototest.Tutorial()}, prototest.HelloWorld()...)
	s.fds = &descriptorpb.FileDescriptorSet{File: files}
}

// SetupTest runs before each individual test.
func (s *PluginTestSuite) SetupTest() {
	s.stderr = &bytes.Buffer{}
}

// findWorkspaceRoot finds the root of the Go module by looking for go.mod.
func (s *PluginTestSuite) findWorkspaceRoot() string {
	dir, err := os.Getwd()
	s.Require().NoError(err, "Failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		s.Require().NotEqual(dir, parent, "Could not find workspace root (go.mod)")
		dir = parent
	}
}

// Request builds a CodeGeneratorRequest over the suite's descriptor set.
func (s *PluginTestSuite) Request(parameter string, toGenerate ...string) *pluginpb.CodeGeneratorRequest {
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: toGenerate,
		ProtoFile:      s.fds.File,
	}
	if parameter != "" {
		req.Parameter = proto.String(parameter)
	}
	return req
}

// Plugin returns a plugin logging into the suite's stderr buffer.
func (s *PluginTestSuite) Plugin() *Plugin {
	return &Plugin{Version: "test", Stderr: s.stderr}
}

// RunGenerate runs the plugin and returns the generated files by name.
func (s *PluginTestSuite) RunGenerate(req *pluginpb.CodeGeneratorRequest) map[string]string {
	resp := s.Plugin().Generate(req)
	s.Require().Empty(resp.GetError(), "Generate response error: %s", resp.GetError())

	result := make(map[string]string)
	for _, file := range resp.File {
		result[file.GetName()] = file.GetContent()
	}
	return result
}

// TempDir creates a temporary directory that is automatically cleaned up after the test.
func (s *PluginTestSuite) TempDir() string {
	return s.T().TempDir()
}
