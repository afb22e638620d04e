package codegen

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ModuleTestSuite tests module naming and include file rendering.
type ModuleTestSuite struct {
	suite.Suite
}

func TestModuleSuite(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) TestModuleFromPackage() {
	tests := []struct {
		pkg      string
		parts    []string
		fileName string
	}{
		{pkg: "", parts: nil, fileName: "_.rs"},
		{pkg: "tutorial", parts: []string{"tutorial"}, fileName: "tutorial.rs"},
		{pkg: "foo.BarBaz.v1", parts: []string{"foo", "bar_baz", "v1"}, fileName: "foo.bar_baz.v1.rs"},
		{pkg: "foo.type", parts: []string{"foo", "type"}, fileName: "foo.type.rs"},
	}
	for _, tt := range tests {
		s.Run(tt.pkg, func() {
			m := ModuleFromPackage(tt.pkg)
			s.Equal(tt.parts, m.Parts())
			s.Equal(tt.fileName, m.FileName(DefaultPackageFilename))
		})
	}
}

func (s *ModuleTestSuite) TestCompare() {
	s.Negative(ModuleFromPackage("").Compare(ModuleFromPackage("a")))
	s.Negative(ModuleFromPackage("a").Compare(ModuleFromPackage("a.b")))
	s.Positive(ModuleFromPackage("b").Compare(ModuleFromPackage("a.b")))
	s.Zero(ModuleFromPackage(".a.b").Compare(ModuleFromPackage("a.b")))
}

func (s *ModuleTestSuite) TestWriteIncludes() {
	modules := []Module{
		ModuleFromPackage("foo.bar"),
		ModuleFromPackage("foo"),
		ModuleFromPackage("baz"),
		ModuleFromPackage(""),
		ModuleFromPackage("foo.type"),
	}

	want := `include!("_.rs");
pub mod baz {
    include!("baz.rs");
}
pub mod foo {
    include!("foo.rs");
    pub mod bar {
        include!("foo.bar.rs");
    }
    pub mod r#type {
        include!("foo.type.rs");
    }
}
`
	s.Equal(want, WriteIncludes(modules, DefaultPackageFilename))
}

func (s *ModuleTestSuite) TestWriteIncludesWithoutParentModule() {
	want := `pub mod a {
    pub mod b {
        include!("a.b.rs");
    }
    pub mod c {
        include!("a.c.rs");
    }
}
`
	s.Equal(want, WriteIncludes([]Module{ModuleFromPackage("a.c"), ModuleFromPackage("a.b")}, "_"))
}
