package codegen

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// MessageGraph records which messages embed which other messages by value.
//
// There is an edge A -> B when A has a non-repeated field of message type B.
// Repeated and map fields are already heap-allocated collections, so they
// never contribute edges.
type MessageGraph struct {
	index map[string]int
	names []string
	edges [][]int
}

// NewMessageGraph builds the containment graph for every message in files.
func NewMessageGraph(files ...*descriptorpb.FileDescriptorProto) *MessageGraph {
	g := &MessageGraph{index: make(map[string]int)}
	for _, file := range files {
		pkg := ""
		if file.GetPackage() != "" {
			pkg = "." + file.GetPackage()
		}
		for _, msg := range file.GetMessageType() {
			g.addMessage(pkg, msg)
		}
	}
	return g
}

func (g *MessageGraph) node(name string) int {
	if idx, ok := g.index[name]; ok {
		return idx
	}
	idx := len(g.names)
	g.index[name] = idx
	g.names = append(g.names, name)
	g.edges = append(g.edges, nil)
	return idx
}

func (g *MessageGraph) addMessage(parent string, msg *descriptorpb.DescriptorProto) {
	name := parent + "." + msg.GetName()

	// Map entries hold map keys and values, which live inside the map's
	// own allocation.
	if msg.GetOptions().GetMapEntry() {
		return
	}

	from := g.node(name)
	for _, field := range msg.GetField() {
		if field.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
			continue
		}
		switch field.GetType() {
		case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
			to := g.node(field.GetTypeName())
			g.edges[from] = append(g.edges[from], to)
		}
	}
	for _, nested := range msg.GetNestedType() {
		g.addMessage(name, nested)
	}
}

// IsNested reports whether ancestor is reachable from typeName, i.e. whether
// embedding typeName by value inside ancestor would make ancestor infinitely
// sized. A type always reaches itself.
func (g *MessageGraph) IsNested(typeName, ancestor string) bool {
	from, ok := g.index[typeName]
	if !ok {
		return false
	}
	to, ok := g.index[ancestor]
	if !ok {
		return false
	}

	visited := make([]bool, len(g.names))
	visited[from] = true
	queue := []int{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return true
		}
		for _, next := range g.edges[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
