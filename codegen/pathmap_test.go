package codegen

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// PathMapTestSuite tests selector matching and lookup order.
type PathMapTestSuite struct {
	suite.Suite
}

func TestPathMapSuite(t *testing.T) {
	suite.Run(t, new(PathMapTestSuite))
}

func (s *PathMapTestSuite) TestMatchPath() {
	tests := []struct {
		name     string
		selector string
		path     string
		want     bool
	}{
		{name: "root matches message", selector: ".", path: ".pkg.Msg", want: true},
		{name: "root matches field", selector: ".", path: ".Msg.field", want: true},
		{name: "absolute exact", selector: ".pkg.Msg", path: ".pkg.Msg", want: true},
		{name: "absolute package prefix", selector: ".pkg", path: ".pkg.Msg.field", want: true},
		{name: "absolute needs segment boundary", selector: ".pkg", path: ".pkgs.Msg", want: false},
		{name: "absolute is not a suffix match", selector: ".Msg", path: ".pkg.Msg", want: false},
		{name: "relative field name", selector: "field", path: ".pkg.Msg.field", want: true},
		{name: "relative message and field", selector: "Msg.field", path: ".pkg.Msg.field", want: true},
		{name: "relative needs segment boundary", selector: "sg.field", path: ".pkg.Msg.field", want: false},
		{name: "relative does not match prefix", selector: "pkg", path: ".pkg.Msg", want: false},
		{name: "relative oneof member", selector: "Container.data.foo", path: ".Container.data.foo", want: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, MatchPath(tt.selector, tt.path))
		})
	}
}

func (s *PathMapTestSuite) TestGetReturnsAllMatchesInInsertionOrder() {
	var m PathMap[string]
	m.Insert(".", "root")
	m.Insert("Other", "other")
	m.Insert(".pkg.Msg", "absolute")
	m.Insert("Msg", "relative")

	s.Equal([]string{"root", "absolute", "relative"}, m.Get(".pkg.Msg"))
	s.Equal(4, m.Len())
}

func (s *PathMapTestSuite) TestGetFirstUsesFirstMatch() {
	var m PathMap[int]
	m.Insert("Msg.a", 1)
	m.Insert(".pkg", 2)

	v, ok := m.GetFirstField(".pkg.Msg", "a")
	s.True(ok)
	s.Equal(1, v)

	v, ok = m.GetFirstField(".pkg.Msg", "b")
	s.True(ok)
	s.Equal(2, v)

	_, ok = m.GetFirst(".other.Msg")
	s.False(ok)
}

func (s *PathMapTestSuite) TestGetFieldBuildsFieldPath() {
	var m PathMap[string]
	m.Insert(".pkg.Msg.name", "x")

	s.Equal([]string{"x"}, m.GetField(".pkg.Msg", "name"))
	s.Empty(m.GetField(".pkg.Msg", "other"))
	s.Empty(m.Get(".pkg.Msg"))
}
