package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
	"github.com/alis-exchange/protoc-gen-scale/prototest"
	"github.com/alis-exchange/protoc-gen-scale/services"
)

// ConfigTestSuite tests loading, validating and applying configuration files.
type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadFull() {
	f, err := Load(filepath.Join("testdata", "full.yaml"))
	s.Require().NoError(err)

	s.Equal(&File{
		BTreeMap:          []string{".tutorial"},
		Bytes:             []string{"Person.photo"},
		Boxed:             []string{".tutorial.Person.best_friend"},
		DisableComments:   []string{"Person.email"},
		SkipDebug:         []string{"Person.PhoneNumber"},
		TypeAttributes:    []Attribute{{Path: ".", Attribute: "#[derive(Clone)]"}},
		MessageAttributes: []Attribute{{Path: "Person", Attribute: "#[codec(dumb_trait_bound)]"}},
		EnumAttributes:    []Attribute{{Path: ".tutorial.Person.PhoneType", Attribute: "#[repr(i32)]"}},
		FieldAttributes:   []Attribute{{Path: "Person.name", Attribute: "#[codec(compact)]"}},
		TypeNameDomains:   []TypeNameDomain{{Paths: []string{".tutorial"}, Domain: "type.googleapis.com"}},
		ExternPaths: []codegen.ExternPath{
			{ProtoPath: ".google.protobuf", RustPath: "::scale_types::protobuf"},
		},
		RetainEnumPrefix:       true,
		DeriveDebug:            true,
		DefaultPackageFilename: "root",
		IncludeFile:            "mod.rs",
		Services:               "trait",
	}, f)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	s.Require().Error(err)
	s.Contains(err.Error(), "read config")
}

func (s *ConfigTestSuite) TestParseEmpty() {
	f, err := Parse(nil)
	s.Require().NoError(err)
	s.Equal(&File{}, f)
}

func (s *ConfigTestSuite) TestParseJSON() {
	f, err := Parse([]byte(`{"boxed": [".a.B.c"], "derive_debug": true}`))
	s.Require().NoError(err)
	s.Equal([]string{".a.B.c"}, f.Boxed)
	s.True(f.DeriveDebug)
}

func (s *ConfigTestSuite) TestParseInvalid() {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "boxd: [.a]\n"},
		{name: "wrong type", doc: "btree_map: 5\n"},
		{name: "missing extern rust path", doc: "extern_paths:\n  - proto: .a\n"},
		{name: "missing attribute", doc: "field_attributes:\n  - path: A.b\n"},
		{name: "not a mapping", doc: "- a\n- b\n"},
		{name: "malformed yaml", doc: "boxed: [\n"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := Parse([]byte(tt.doc))
			s.Require().Error(err)
			s.ErrorIs(err, codegen.ErrInvalidConfig)
		})
	}
}

func (s *ConfigTestSuite) TestApply() {
	f, err := Load(filepath.Join("testdata", "full.yaml"))
	s.Require().NoError(err)

	cfg := codegen.NewConfig()
	s.Require().NoError(f.Apply(cfg, nil))

	s.Equal("mod.rs", cfg.IncludeFileName())
	s.Equal("root", cfg.PackageFilename())

	result, err := codegen.Generate(cfg, []codegen.Request{codegen.NewRequest(prototest.Tutorial())})
	s.Require().NoError(err)
	s.Require().Len(result.Modules, 1)
	content := result.Modules[0].Content

	s.Contains(content, "#[derive(Clone)]\n#[codec(dumb_trait_bound)]\n#[derive(Encode, Decode, Debug)]\npub struct Person {\n")
	s.Contains(content, "    #[codec(compact)]\n    pub name: alloc::string::String,\n")
	s.Contains(content, "    #[derive(Clone)]\n    #[derive(Encode, Decode)]\n    pub struct PhoneNumber {\n")
	s.Contains(content, "    #[derive(Clone)]\n    #[repr(i32)]\n    #[derive(Encode, Decode, Debug)]\n    pub enum PhoneType {\n")
	s.Contains(content, "        Mobile = 0,\n")
	s.Contains(content, `pub const TYPE_URL: &'static str = "type.googleapis.com/tutorial.Person";`)
	s.Equal("mod.rs", result.IncludeFileName)
}

func (s *ConfigTestSuite) TestApplyServices() {
	cfg := codegen.NewConfig()
	s.Require().NoError((&File{Services: "trait"}).Apply(cfg, nil))

	var requests []codegen.Request
	for _, f := range prototest.HelloWorld() {
		requests = append(requests, codegen.NewRequest(f))
	}
	result, err := codegen.Generate(cfg, requests)
	s.Require().NoError(err)
	s.Contains(result.Modules[0].Content, "pub trait Greeting {")
}

func (s *ConfigTestSuite) TestApplyUnknownServices() {
	err := (&File{Services: "grpc"}).Apply(codegen.NewConfig(), nil)
	s.Require().Error(err)
	s.ErrorIs(err, codegen.ErrInvalidConfig)
	s.Contains(err.Error(), services.Names()[0])
}
