package codegen

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// enumVariant is one emitted variant of a generated enum.
type enumVariant struct {
	pathIndex   int32  // index of the value in the enum descriptor
	protoName   string // e.g. PHONE_TYPE_MOBILE
	number      int32
	variantName string // e.g. Mobile
}

// buildEnumVariants maps enum values to Rust variants.
//
// Only the first value for each number is kept; aliases stay decodable
// through the shared number. Two distinct values whose generated names
// collide are a schema error.
func buildEnumVariants(fqEnumName, enumName string, stripPrefix bool, values []*descriptorpb.EnumValueDescriptorProto) ([]enumVariant, error) {
	seenNumbers := make(map[int32]bool, len(values))
	generated := make(map[string]string, len(values))
	var variants []enumVariant

	for idx, value := range values {
		if seenNumbers[value.GetNumber()] {
			continue
		}
		seenNumbers[value.GetNumber()] = true

		name := ToUpperCamel(value.GetName())
		if stripPrefix {
			name = StripEnumPrefix(enumName, name)
		}

		if previous, ok := generated[name]; ok {
			return nil, &SchemaError{
				Path: fqEnumName,
				Message: fmt.Sprintf("variant name %q used by both %q and %q",
					name, previous, value.GetName()),
				Cause: ErrEnumVariantCollision,
			}
		}
		generated[name] = value.GetName()

		variants = append(variants, enumVariant{
			pathIndex:   int32(idx),
			protoName:   value.GetName(),
			number:      value.GetNumber(),
			variantName: name,
		})
	}
	return variants, nil
}
