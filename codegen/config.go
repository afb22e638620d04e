package codegen

// MapType selects the Rust collection used for proto map fields.
type MapType int

const (
	// MapTypeHashMap is the default map container.
	MapTypeHashMap MapType = iota
	// MapTypeBTreeMap is selected with Config.BTreeMap.
	MapTypeBTreeMap
)

// RustType returns the fully-qualified Rust type of the map container.
//
// parity-scale-codec only implements Encode/Decode for ordered maps in
// no_std builds, so both choices are backed by BTreeMap.
func (t MapType) RustType() string {
	switch t {
	case MapTypeBTreeMap:
		return "alloc::collections::BTreeMap"
	default:
		return "alloc::collections::BTreeMap"
	}
}

// BytesType selects the Rust type used for proto bytes fields.
type BytesType int

const (
	// BytesTypeVec is the default bytes container.
	BytesTypeVec BytesType = iota
	// BytesTypeBytes is selected with Config.Bytes.
	BytesTypeBytes
)

// RustType returns the fully-qualified Rust type of the bytes container.
func (t BytesType) RustType() string {
	switch t {
	case BytesTypeBytes:
		return "bytes::Bytes"
	default:
		return "alloc::vec::Vec<u8>"
	}
}

// DefaultPackageFilename is the output file stem for files without a package.
const DefaultPackageFilename = "_"

// Config holds every user override applied during generation.
//
// Selectors follow the PathMap rules. Builder methods return the Config so
// calls can be chained; entries are applied in call order.
type Config struct {
	mapType           PathMap[MapType]
	bytesType         PathMap[BytesType]
	typeAttributes    PathMap[string]
	messageAttributes PathMap[string]
	enumAttributes    PathMap[string]
	fieldAttributes   PathMap[string]
	boxed             PathMap[struct{}]
	disableComments   PathMap[struct{}]
	skipDebug         PathMap[struct{}]
	typeNameDomains   PathMap[string]
	externPaths       []ExternPath

	stripEnumPrefix        bool
	deriveDebug            bool
	defaultPackageFilename string
	includeFile            string
	serviceGenerator       ServiceGenerator
}

// NewConfig returns a Config with the default settings: enum prefixes are
// stripped and package-less files are written to "_.rs".
func NewConfig() *Config {
	return &Config{
		stripEnumPrefix:        true,
		defaultPackageFilename: DefaultPackageFilename,
	}
}

// BTreeMap makes map fields matching paths use BTreeMap.
func (c *Config) BTreeMap(paths ...string) *Config {
	for _, p := range paths {
		c.mapType.Insert(p, MapTypeBTreeMap)
	}
	return c
}

// Bytes makes bytes fields matching paths use bytes::Bytes.
func (c *Config) Bytes(paths ...string) *Config {
	for _, p := range paths {
		c.bytesType.Insert(p, BytesTypeBytes)
	}
	return c
}

// FieldAttribute adds an attribute line to matching fields, oneof variants
// and enum variants.
func (c *Config) FieldAttribute(path, attribute string) *Config {
	c.fieldAttributes.Insert(path, attribute)
	return c
}

// TypeAttribute adds an attribute line to matching messages, enums and oneofs.
func (c *Config) TypeAttribute(path, attribute string) *Config {
	c.typeAttributes.Insert(path, attribute)
	return c
}

// MessageAttribute adds an attribute line to matching message structs.
func (c *Config) MessageAttribute(path, attribute string) *Config {
	c.messageAttributes.Insert(path, attribute)
	return c
}

// EnumAttribute adds an attribute line to matching enums and oneof enums.
func (c *Config) EnumAttribute(path, attribute string) *Config {
	c.enumAttributes.Insert(path, attribute)
	return c
}

// Boxed wraps matching message fields in Box.
func (c *Config) Boxed(path string) *Config {
	c.boxed.Insert(path, struct{}{})
	return c
}

// DisableComments suppresses doc comments on matching declarations.
func (c *Config) DisableComments(paths ...string) *Config {
	for _, p := range paths {
		c.disableComments.Insert(p, struct{}{})
	}
	return c
}

// SkipDebug omits the derived Debug impl on matching types so users can
// provide their own. It only has an effect with DeriveDebug.
func (c *Config) SkipDebug(paths ...string) *Config {
	for _, p := range paths {
		c.skipDebug.Insert(p, struct{}{})
	}
	return c
}

// DeriveDebug adds Debug to the derive list of every generated type.
func (c *Config) DeriveDebug(enabled bool) *Config {
	c.deriveDebug = enabled
	return c
}

// TypeNameDomain sets the type URL domain of matching messages.
func (c *Config) TypeNameDomain(paths []string, domain string) *Config {
	for _, p := range paths {
		c.typeNameDomains.Insert(p, domain)
	}
	return c
}

// ExternPath maps a proto path to an existing Rust path.
func (c *Config) ExternPath(protoPath, rustPath string) *Config {
	c.externPaths = append(c.externPaths, ExternPath{ProtoPath: protoPath, RustPath: rustPath})
	return c
}

// RetainEnumPrefix keeps the enum name prefix on variant names.
func (c *Config) RetainEnumPrefix() *Config {
	c.stripEnumPrefix = false
	return c
}

// DefaultPackageFilename sets the file stem used for files without a package.
func (c *Config) DefaultPackageFilename(name string) *Config {
	c.defaultPackageFilename = name
	return c
}

// IncludeFile requests an include file nesting all generated modules.
func (c *Config) IncludeFile(name string) *Config {
	c.includeFile = name
	return c
}

// ServiceGenerator sets the emitter invoked for proto services. Without one,
// services are skipped.
func (c *Config) ServiceGenerator(sg ServiceGenerator) *Config {
	c.serviceGenerator = sg
	return c
}

// IncludeFileName returns the configured include file name, if any.
func (c *Config) IncludeFileName() string {
	return c.includeFile
}

// PackageFilename returns the file stem used for files without a package.
func (c *Config) PackageFilename() string {
	return c.defaultPackageFilename
}
