package cli

import (
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/toyz/sdkregen/internal/registry"
	"github.com/toyz/sdkregen/internal/utils/fileops"
)

// Generator flags, in the order Build emits them
const (
	FlagVersion           = "--version"
	FlagJava              = "--java"
	FlagAzureArm          = "--azure-arm"
	FlagFluent            = "--fluent"
	FlagNamespace         = "--namespace"
	FlagTag               = "--tag"
	FlagOutputFolder      = "--output-folder"
	FlagLicenseHeader     = "--license-header"
	FlagUse               = "--use"
	FlagRegenerateManager = "--regenerate-manager"
)

// LicenseHeader suppresses the license boilerplate in generated files
const LicenseHeader = "MICROSOFT_MIT_NO_CODEGEN"

// LatestVersion selects the newest installed AutoRest
const LatestVersion = "latest"

// autorestEntryPoint is the CLI script inside an AutoRest checkout
var autorestEntryPoint = filepath.Join("src", "autorest-core", "dist", "app.js")

// Builder turns a project descriptor and the run configuration into a
// generator command. It never touches the filesystem or starts processes.
type Builder struct {
	paths *fileops.PathValidator
}

// NewBuilder creates a new command builder
func NewBuilder() *Builder {
	return &Builder{
		paths: fileops.NewPathValidator(),
	}
}

// IsVersion reports whether spec selects an installed AutoRest by version
// rather than naming a checkout directory
func IsVersion(spec string) bool {
	if spec == LatestVersion {
		return true
	}

	v := spec
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return false
	}

	// semver accepts "v1" and "v1.2" as shorthands; a version needs all three parts
	core := strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") == 2
}

// Executable returns the program and leading arguments that start AutoRest
func (b *Builder) Executable(spec string) (string, []Arg) {
	if IsVersion(spec) {
		return "autorest", []Arg{{Flag: FlagVersion, Value: spec}}
	}
	return "node", []Arg{{Value: filepath.Join(spec, autorestEntryPoint)}}
}

// Build creates the generator command for d. cfg must have been validated.
func (b *Builder) Build(d registry.Descriptor, cfg *Config) *Command {
	program, args := b.Executable(cfg.Autorest)

	args = append(args,
		Arg{Value: d.SpecLocation(cfg.SpecRoot)},
		Arg{Flag: FlagJava},
		Arg{Flag: FlagAzureArm},
	)

	if d.IsFluent() {
		args = append(args, Arg{Flag: FlagFluent})
	}

	args = append(args, Arg{Flag: FlagNamespace, Value: d.Namespace})
	if d.Tag != "" {
		args = append(args, Arg{Flag: FlagTag, Value: d.Tag})
	}
	args = append(args,
		Arg{Flag: FlagOutputFolder, Value: b.paths.Resolve(cfg.WorkDir, d.OutputDirectory)},
		Arg{Flag: FlagLicenseHeader, Value: LicenseHeader},
	)

	if cfg.AutorestJava != "" {
		base := b.paths.Resolve(cfg.WorkDir, cfg.Autorest)
		args = append(args, Arg{Flag: FlagUse, Value: b.paths.Resolve(base, cfg.AutorestJava)})
	}

	if cfg.RegenerateManager {
		args = append(args, Arg{Flag: FlagRegenerateManager, Value: "true"})
	}

	for _, fragment := range []string{cfg.AutorestArgs, d.ExtraArgs} {
		if fragment = strings.TrimSpace(fragment); fragment != "" {
			args = append(args, Arg{Value: fragment, Raw: true})
		}
	}

	return &Command{
		Project: d.Name,
		Program: program,
		Args:    args,
	}
}
