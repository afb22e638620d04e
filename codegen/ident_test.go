package codegen

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// IdentTestSuite tests Rust identifier casing and escaping.
type IdentTestSuite struct {
	suite.Suite
}

func TestIdentSuite(t *testing.T) {
	suite.Run(t, new(IdentTestSuite))
}

func (s *IdentTestSuite) TestToSnake() {
	tests := []struct {
		in   string
		want string
	}{
		{in: "FooBar", want: "foo_bar"},
		{in: "fooBar", want: "foo_bar"},
		{in: "foo_bar", want: "foo_bar"},
		{in: "HTTPServer", want: "http_server"},
		{in: "XMLHttpRequest", want: "xml_http_request"},
		{in: "PHONE_TYPE", want: "phone_type"},
		{in: "v1", want: "v1"},
		{in: "type", want: "r#type"},
		{in: "match", want: "r#match"},
		{in: "self", want: "self_"},
		{in: "super", want: "super_"},
		{in: "crate", want: "crate_"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		s.Run(tt.in, func() {
			s.Equal(tt.want, ToSnake(tt.in))
		})
	}
}

func (s *IdentTestSuite) TestToUpperCamel() {
	tests := []struct {
		in   string
		want string
	}{
		{in: "foo_bar", want: "FooBar"},
		{in: "FooBar", want: "FooBar"},
		{in: "PHONE_TYPE_MOBILE", want: "PhoneTypeMobile"},
		{in: "http_server", want: "HttpServer"},
		{in: "v1", want: "V1"},
		{in: "FOO_1", want: "Foo1"},
		{in: "self", want: "Self_"},
	}

	for _, tt := range tests {
		s.Run(tt.in, func() {
			s.Equal(tt.want, ToUpperCamel(tt.in))
		})
	}
}

func (s *IdentTestSuite) TestStripEnumPrefix() {
	tests := []struct {
		name   string
		prefix string
		in     string
		want   string
	}{
		{name: "strips prefix", prefix: "PhoneType", in: "PhoneTypeMobile", want: "Mobile"},
		{name: "keeps unrelated", prefix: "PhoneType", in: "Mobile", want: "Mobile"},
		{name: "word boundary only", prefix: "Foo", in: "Foobar", want: "Foobar"},
		{name: "keeps whole name", prefix: "Foo", in: "Foo", want: "Foo"},
		{name: "keeps digit start", prefix: "Foo", in: "Foo1", want: "Foo1"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, StripEnumPrefix(tt.prefix, tt.in))
		})
	}
}
