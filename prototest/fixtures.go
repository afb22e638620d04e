package prototest

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// Tutorial is the address book schema: a message with a nested message, a
// nested enum and documentation comments.
func Tutorial() *descriptorpb.FileDescriptorProto {
	person := Message("Person",
		String("name", 1),
		Int32("id", 2),
		String("email", 3),
		Repeated(MessageField("phones", 4, ".tutorial.Person.PhoneNumber")),
	)
	Nested(person, Message("PhoneNumber",
		String("number", 1),
		EnumField("type", 2, ".tutorial.Person.PhoneType"),
	))
	NestedEnum(person, Enum("PhoneType",
		Value("MOBILE", 0),
		Value("HOME", 1),
		Value("WORK", 2),
	))

	return NewFile("tutorial.proto", "tutorial").
		Message(person).
		Comment([]int32{4, 0}, " A person in the address book.\n", "").
		Comment([]int32{4, 0, 2, 1}, " Unique ID number for this person.\n", "").
		Build()
}

// FieldAttributes is a package-less schema with a oneof and a chain of
// message fields, used with the boxed overrides ".Container.data.foo" and
// "Bar.qux".
func FieldAttributes() *descriptorpb.FileDescriptorProto {
	container := Oneof(Message("Container",
		InOneof(MessageField("foo", 1, ".Foo"), 0),
		InOneof(MessageField("bar", 2, ".Bar"), 0),
	), "data")

	return NewFile("field_attributes.proto", "").
		Message(
			container,
			Message("Foo", String("foo", 1)),
			Message("Bar", MessageField("qux", 1, ".Qux")),
			Message("Qux"),
		).
		Build()
}

// BoxedCycle is FieldAttributes' Bar and Qux closed into a cycle, so the
// "Bar.qux" boxed override and the containment graph both ask for Box.
func BoxedCycle() *descriptorpb.FileDescriptorProto {
	return NewFile("cycle.proto", "cycle").
		Message(
			Message("Bar", MessageField("qux", 1, ".cycle.Qux")),
			Message("Qux", MessageField("bar", 1, ".cycle.Bar")),
		).
		Build()
}

// Recursive is a schema whose messages contain each other by value.
func Recursive() *descriptorpb.FileDescriptorProto {
	return NewFile("recursive.proto", "recursive").
		Message(
			Message("Tree",
				MessageField("left", 1, ".recursive.Tree"),
				Repeated(MessageField("children", 2, ".recursive.Tree")),
				MessageField("node", 3, ".recursive.Node"),
			),
			Message("Node",
				MessageField("tree", 1, ".recursive.Tree"),
				String("label", 2),
			),
			Message("Leaf", String("label", 1)),
		).
		Build()
}

// HelloWorld is a package split over three files: shared types and two
// files that each declare a service.
func HelloWorld() []*descriptorpb.FileDescriptorProto {
	types := NewFile("types.proto", "helloworld").
		Message(
			Message("Message", String("say", 1)),
			Message("Response", String("say", 1)),
		).
		Build()

	greeting := NewFile("helloworld.proto", "helloworld").
		Dependency("types.proto").
		Service(Service("Greeting",
			Method("Hello", ".helloworld.Message", ".helloworld.Response"),
		)).
		Comment([]int32{6, 0}, " Greets the caller.\n", "").
		Comment([]int32{6, 0, 2, 0}, " Says hello.\n", "").
		Build()

	farewell := NewFile("goodbye.proto", "helloworld").
		Dependency("types.proto").
		Service(Service("Farewell",
			Method("Goodbye", ".helloworld.Message", ".helloworld.Response"),
			Streaming(Method("GoodbyeStream", ".helloworld.Message", ".helloworld.Response"), false, true),
		)).
		Build()

	return []*descriptorpb.FileDescriptorProto{types, greeting, farewell}
}
