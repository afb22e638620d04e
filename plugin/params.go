package plugin

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
	"github.com/alis-exchange/protoc-gen-scale/config"
	"github.com/alis-exchange/protoc-gen-scale/services"
)

// Params are the plugin parameters, passed as `--scale_opt=key=value,...`.
//
// List parameters may be repeated; every occurrence appends a selector.
// Parameters are applied after the configuration file named by `config`, so
// they add to it rather than replace it.
type Params struct {
	Config                 string
	BTreeMap               stringList
	Bytes                  stringList
	Boxed                  stringList
	DisableComments        stringList
	SkipDebug              stringList
	ExternPaths            externPathList
	RetainEnumPrefix       bool
	DeriveDebug            bool
	IncludeFile            string
	DefaultPackageFilename string
	Services               string
	LogLevel               slog.Level
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// externPathList is a repeatable `<proto path>=<rust path>` flag.
type externPathList []codegen.ExternPath

func (l *externPathList) String() string {
	parts := make([]string, len(*l))
	for i, e := range *l {
		parts[i] = e.ProtoPath + "=" + e.RustPath
	}
	return strings.Join(parts, ",")
}

func (l *externPathList) Set(value string) error {
	protoPath, rustPath, ok := strings.Cut(value, "=")
	if !ok || protoPath == "" || rustPath == "" {
		return fmt.Errorf("expected <proto path>=<rust path>, got %q", value)
	}
	*l = append(*l, codegen.ExternPath{ProtoPath: protoPath, RustPath: rustPath})
	return nil
}

// flagSet registers every parameter on a new FlagSet.
func (p *Params) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("protoc-gen-scale", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&p.Config, "config", "", "YAML configuration file")
	fs.Var(&p.BTreeMap, "btree_map", "use BTreeMap for matching map fields")
	fs.Var(&p.Bytes, "bytes", "use bytes::Bytes for matching bytes fields")
	fs.Var(&p.Boxed, "boxed", "box matching message fields")
	fs.Var(&p.DisableComments, "disable_comments", "omit comments on matching declarations")
	fs.Var(&p.SkipDebug, "skip_debug", "omit the Debug derive on matching types")
	fs.Var(&p.ExternPaths, "extern_path", "map a proto path to a Rust path: <proto>=<rust>")
	fs.BoolVar(&p.RetainEnumPrefix, "retain_enum_prefix", false, "keep enum name prefixes on variants")
	fs.BoolVar(&p.DeriveDebug, "derive_debug", false, "derive Debug on generated types")
	fs.StringVar(&p.IncludeFile, "include_file", "", "write an include file nesting every module")
	fs.StringVar(&p.DefaultPackageFilename, "default_package_filename", "", "file stem for files without a package")
	fs.StringVar(&p.Services, "services", "", "service generator: "+strings.Join(services.Names(), ", "))
	fs.TextVar(&p.LogLevel, "log_level", slog.LevelWarn, "log level written to stderr")
	return fs
}

// ParseParams parses the parameter string of a CodeGeneratorRequest.
//
// Parameters are split on ',' and each is split on its first '='. A bare
// boolean parameter (e.g. `derive_debug`) enables it.
func ParseParams(parameter string) (*Params, error) {
	p := &Params{}
	fs := p.flagSet()
	for _, param := range strings.Split(parameter, ",") {
		if param == "" {
			continue
		}
		name, value, hasValue := strings.Cut(param, "=")
		if !hasValue && isBoolFlag(fs, name) {
			value = "true"
		}
		if err := fs.Set(name, value); err != nil {
			return nil, codegen.NewConfigError("parameter", param, err.Error())
		}
	}
	return p, nil
}

func isBoolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// Apply builds the generator configuration: the configuration file first,
// then the parameters.
func (p *Params) Apply(cfg *codegen.Config, logger *slog.Logger) error {
	if p.Config != "" {
		f, err := config.Load(p.Config)
		if err != nil {
			return err
		}
		if err := f.Apply(cfg, logger); err != nil {
			return err
		}
	}

	cfg.BTreeMap(p.BTreeMap...)
	cfg.Bytes(p.Bytes...)
	for _, path := range p.Boxed {
		cfg.Boxed(path)
	}
	cfg.DisableComments(p.DisableComments...)
	cfg.SkipDebug(p.SkipDebug...)
	for _, e := range p.ExternPaths {
		cfg.ExternPath(e.ProtoPath, e.RustPath)
	}
	if p.RetainEnumPrefix {
		cfg.RetainEnumPrefix()
	}
	if p.DeriveDebug {
		cfg.DeriveDebug(true)
	}
	if p.IncludeFile != "" {
		cfg.IncludeFile(p.IncludeFile)
	}
	if p.DefaultPackageFilename != "" {
		cfg.DefaultPackageFilename(p.DefaultPackageFilename)
	}
	if p.Services != "" {
		sg, err := services.New(p.Services, logger)
		if err != nil {
			return err
		}
		cfg.ServiceGenerator(sg)
	}
	return nil
}
