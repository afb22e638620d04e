package plugin

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/alis-exchange/protoc-gen-scale/prototest"
)

// IntegrationTestSuite runs the built plugin binary the way protoc does.
type IntegrationTestSuite struct {
	PluginTestSuite

	// pluginBinary is the path to the built plugin binary
	pluginBinary string
}

// TestIntegrationSuite runs the IntegrationTestSuite.
func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping plugin build in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

// SetupSuite runs once before all tests and builds the plugin binary.
func (s *IntegrationTestSuite) SetupSuite() {
	s.PluginTestSuite.SetupSuite()
	s.buildPlugin()
}

// TearDownSuite runs once after all tests and cleans up the plugin binary.
func (s *IntegrationTestSuite) TearDownSuite() {
	if s.pluginBinary != "" {
		os.RemoveAll(filepath.Dir(s.pluginBinary))
	}
}

// buildPlugin builds the plugin binary for integration tests.
func (s *IntegrationTestSuite) buildPlugin() {
	tmpDir, err := os.MkdirTemp("", "protoc-gen-scale-test-*")
	s.Require().NoError(err, "Failed to create temp directory")
	s.pluginBinary = filepath.Join(tmpDir, "protoc-gen-scale")

	buildCmd := exec.Command("go", "build", "-o", s.pluginBinary, "./cmd/protoc-gen-scale")
	buildCmd.Dir = s.workspaceRoot
	output, err := buildCmd.CombinedOutput()
	s.Require().NoError(err, "Failed to build plugin: %s", string(output))

	s.T().Logf("Built plugin binary: %s", s.pluginBinary)
}

// runPlugin pipes req through the binary and returns its response.
func (s *IntegrationTestSuite) runPlugin(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	in, err := proto.Marshal(req)
	s.Require().NoError(err)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.pluginBinary)
	cmd.Stdin = bytes.NewReader(in)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	s.Require().NoError(cmd.Run(), "plugin failed: %s", stderr.String())

	resp := &pluginpb.CodeGeneratorResponse{}
	s.Require().NoError(proto.Unmarshal(stdout.Bytes(), resp))
	return resp
}

// TestGoldenFile tests that the binary's output matches the golden files
// of the services package.
func (s *IntegrationTestSuite) TestGoldenFile() {
	resp := s.runPlugin(s.Request("services=trait", "types.proto", "helloworld.proto", "goodbye.proto"))
	s.Require().Empty(resp.GetError())
	s.Require().Len(resp.File, 1)

	goldenPath := filepath.Join(s.workspaceRoot, "services", "testdata", "golden", "helloworld.rs.golden")
	prototest.AssertGolden(s.T(), resp.File[0].GetContent(), goldenPath, false)
}

// TestErrorIsReported tests that generation errors reach protoc through the
// response rather than the exit status.
func (s *IntegrationTestSuite) TestErrorIsReported() {
	resp := s.runPlugin(s.Request("services=grpc", "tutorial.proto"))
	s.Contains(resp.GetError(), "unknown service generator")
}

// TestVersionFlag tests the -version flag.
func (s *IntegrationTestSuite) TestVersionFlag() {
	out, err := exec.Command(s.pluginBinary, "-version").Output()
	s.Require().NoError(err)
	s.NotEmpty(bytes.TrimSpace(out))
}
