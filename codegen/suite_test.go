package codegen

import (
	"flag"
	"path/filepath"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/types/descriptorpb"
)

// updateGolden is a flag to update golden files instead of comparing against them.
// Usage: go test ./codegen -update
var updateGolden = flag.Bool("update", false, "update golden files")

// goldenDir returns the path to the golden files directory.
func goldenDir() string {
	return filepath.Join("testdata", "golden")
}

// CodegenTestSuite is the base suite for generator tests. It provides a fresh
// Config for every test and helpers to run generation over descriptors.
type CodegenTestSuite struct {
	suite.Suite

	// cfg is reset before each test; tests chain overrides onto it.
	cfg *Config
}

// SetupTest runs before each individual test.
func (s *CodegenTestSuite) SetupTest() {
	s.cfg = NewConfig()
}

// Generate runs generation for files with the suite's Config and fails the
// test on error.
func (s *CodegenTestSuite) Generate(files ...*descriptorpb.FileDescriptorProto) *Result {
	result, err := s.GenerateErr(files...)
	s.Require().NoError(err, "Generate failed")
	return result
}

// GenerateErr runs generation for files with the suite's Config.
func (s *CodegenTestSuite) GenerateErr(files ...*descriptorpb.FileDescriptorProto) (*Result, error) {
	requests := make([]Request, 0, len(files))
	for _, f := range files {
		requests = append(requests, NewRequest(f))
	}
	return Generate(s.cfg, requests)
}

// Content returns the generated content of the named module file.
func (s *CodegenTestSuite) Content(result *Result, fileName string) string {
	for _, m := range result.Modules {
		if m.FileName == fileName {
			return m.Content
		}
	}
	names := make([]string, 0, len(result.Modules))
	for _, m := range result.Modules {
		names = append(names, m.FileName)
	}
	s.T().Fatalf("Could not find module file %q in %v", fileName, names)
	return ""
}
