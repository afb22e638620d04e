package main

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// VersionTestSuite tests version reporting.
type VersionTestSuite struct {
	suite.Suite
}

func TestVersionSuite(t *testing.T) {
	suite.Run(t, new(VersionTestSuite))
}

func (s *VersionTestSuite) TestStampedVersionWins() {
	saved := version
	s.T().Cleanup(func() { version = saved })

	version = "v1.2.3"
	s.Equal("v1.2.3", buildVersion())
}

func (s *VersionTestSuite) TestUnstampedVersion() {
	saved := version
	s.T().Cleanup(func() { version = saved })

	version = ""
	// Test binaries carry no module version.
	s.Equal("development", buildVersion())
}
