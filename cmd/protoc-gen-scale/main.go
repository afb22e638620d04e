package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alis-exchange/protoc-gen-scale/plugin"
)

// version is stamped by release builds with -ldflags "-X main.version=...".
var version string

// buildVersion reports the stamped version, then the module version recorded
// by `go install`, and "development" for local builds.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "development"
}

func main() {
	showVersion := flag.Bool("version", false, "Print the version of protoc-gen-scale")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s\n", buildVersion())
		os.Exit(0)
	}

	p := &plugin.Plugin{Version: buildVersion(), Stderr: os.Stderr}
	if err := p.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "protoc-gen-scale: %v\n", err)
		os.Exit(1)
	}
}
