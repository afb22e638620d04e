package codegen

import (
	"slices"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Location is the documentation attached to one node of a proto file.
type Location = descriptorpb.SourceCodeInfo_Location

// LocationIndex finds source locations by their descriptor path.
//
// A path alternates descriptor field numbers and element indexes, e.g.
// [4, 0, 2, 1] is the second field of the first top-level message.
type LocationIndex struct {
	locations []*Location
}

// NewLocationIndex indexes the locations of info. Empty and odd-length paths
// point at partial declarations and are dropped. info may be nil.
func NewLocationIndex(info *descriptorpb.SourceCodeInfo) *LocationIndex {
	idx := &LocationIndex{}
	for _, loc := range info.GetLocation() {
		n := len(loc.GetPath())
		if n == 0 || n%2 != 0 {
			continue
		}
		idx.locations = append(idx.locations, loc)
	}
	slices.SortStableFunc(idx.locations, func(a, b *Location) int {
		return slices.Compare(a.GetPath(), b.GetPath())
	})
	return idx
}

// Lookup returns the location with exactly the given path.
func (idx *LocationIndex) Lookup(path []int32) (*Location, bool) {
	if idx == nil {
		return nil, false
	}
	i, found := slices.BinarySearchFunc(idx.locations, path, func(loc *Location, target []int32) int {
		return slices.Compare(loc.GetPath(), target)
	})
	if !found {
		return nil, false
	}
	return idx.locations[i], true
}

// Comments are the comments attached to a declaration, split into lines.
type Comments struct {
	// LeadingDetached holds comment blocks separated from the declaration by a
	// blank line.
	LeadingDetached [][]string
	// Leading is the comment immediately above the declaration.
	Leading []string
	// Trailing is the comment on or after the declaration line.
	Trailing []string
}

// CommentsFromLocation extracts the comments of a location.
func CommentsFromLocation(loc *Location) Comments {
	var c Comments
	for _, block := range loc.GetLeadingDetachedComments() {
		c.LeadingDetached = append(c.LeadingDetached, commentLines(block))
	}
	if loc.LeadingComments != nil {
		c.Leading = commentLines(loc.GetLeadingComments())
	}
	if loc.TrailingComments != nil {
		c.Trailing = commentLines(loc.GetTrailingComments())
	}
	return c
}

func commentLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// IsEmpty reports whether there is nothing to render.
func (c Comments) IsEmpty() bool {
	return len(c.LeadingDetached) == 0 && len(c.Leading) == 0 && len(c.Trailing) == 0
}

// AppendWithIndent renders the comments as Rust comments at the given depth.
// Detached blocks become plain comments; leading and trailing comments
// become doc comments separated by an empty doc line.
func (c Comments) AppendWithIndent(depth int, buf *strings.Builder) {
	for _, block := range c.LeadingDetached {
		for _, line := range block {
			writeIndent(buf, depth)
			buf.WriteString("//")
			buf.WriteString(sanitizeCommentLine(line))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	for _, line := range c.Leading {
		writeIndent(buf, depth)
		buf.WriteString("///")
		buf.WriteString(sanitizeCommentLine(line))
		buf.WriteByte('\n')
	}

	if len(c.Leading) > 0 && len(c.Trailing) > 0 {
		writeIndent(buf, depth)
		buf.WriteString("///\n")
	}

	for _, line := range c.Trailing {
		writeIndent(buf, depth)
		buf.WriteString("///")
		buf.WriteString(sanitizeCommentLine(line))
		buf.WriteByte('\n')
	}
}

// sanitizeCommentLine keeps a proto comment line from turning into something
// other than prose inside a Rust doc comment.
func sanitizeCommentLine(line string) string {
	line = strings.TrimRight(line, " \t\r")
	// "////" is an ordinary comment, not a doc comment.
	if strings.HasPrefix(line, "/") {
		line = " " + line
	}
	return escapeBrackets(line)
}

// escapeBrackets escapes brackets that rustdoc would otherwise parse as
// intra-doc links. Markdown links `[text](url)` and `[text][ref]` are kept.
func escapeBrackets(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		if line[i] == '[' {
			if end := markdownLinkEnd(line, i); end > 0 {
				b.WriteString(line[i:end])
				i = end
				continue
			}
		}
		if line[i] == '[' || line[i] == ']' {
			b.WriteByte('\\')
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}

// markdownLinkEnd returns the end of the Markdown link starting at line[start],
// or -1 when the bracket does not open one.
func markdownLinkEnd(line string, start int) int {
	text := strings.IndexAny(line[start+1:], "[]")
	if text < 0 || line[start+1+text] != ']' {
		return -1
	}
	next := start + 1 + text + 1
	if next >= len(line) {
		return -1
	}
	var closer byte
	switch line[next] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	default:
		return -1
	}
	end := strings.IndexByte(line[next+1:], closer)
	if end < 0 {
		return -1
	}
	return next + 1 + end + 1
}

func writeIndent(buf *strings.Builder, depth int) {
	for range depth {
		buf.WriteString("    ")
	}
}
