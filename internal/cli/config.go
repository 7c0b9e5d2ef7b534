package cli

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/utils"
)

// DefaultSpecRoot is where specifications are fetched from unless
// --spec-root says otherwise
const DefaultSpecRoot = "https://raw.githubusercontent.com/Azure/azure-rest-api-specs/current"

// EnvPrefix prefixes every environment variable read into Config
const EnvPrefix = "SDKREGEN_"

// Config holds the options of one sdkregen invocation. Environment
// variables provide the defaults and command-line flags override them.
type Config struct {
	// SpecRoot is the base URL or directory of the specifications
	SpecRoot string `env:"SPEC_ROOT" envDefault:"https://raw.githubusercontent.com/Azure/azure-rest-api-specs/current"`

	// Projects restricts generation to these names; empty means all
	Projects []string `env:"PROJECTS" envSeparator:","`

	// Autorest is a generator version ("latest", "2.0.4413") or the path
	// of an AutoRest checkout
	Autorest string `env:"AUTOREST" envDefault:"latest"`

	// AutorestArgs is appended verbatim to every generator command line
	AutorestArgs string `env:"AUTOREST_ARGS"`

	// AutorestJava is an alternate Java plugin, relative to Autorest
	AutorestJava string `env:"AUTOREST_JAVA"`

	// Preserve skips deleting previously generated sources
	Preserve bool `env:"PRESERVE"`

	// RegenerateManager asks the generator to rewrite the manager classes
	RegenerateManager bool `env:"REGENERATE_MANAGER"`

	// Await waits for every generator and fails if any of them fails
	Await bool `env:"AWAIT"`

	// DryRun prints commands without cleaning or launching anything
	DryRun bool `env:"DRY_RUN"`

	// Marker identifies generated files during cleanup
	Marker string `env:"MARKER" envDefault:"Code generated by Microsoft (R) AutoRest Code Generator"`

	// Registry is an alternate registry data file
	Registry string `env:"REGISTRY"`

	// WorkDir resolves relative output directories and plugin paths
	WorkDir string `env:"WORK_DIR"`

	// RunID identifies this invocation; generated by Validate when empty
	RunID string `env:"RUN_ID"`
}

// LoadConfig reads SDKREGEN_* environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapConfigurationError("environment", "parse", err)
	}
	return cfg, nil
}

// Validate checks the configuration and derives values used by the builder.
// It must be called once after flags have been applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SpecRoot) == "" {
		return errors.ConfigurationError("spec-root", "specification root cannot be empty")
	}
	c.SpecRoot = strings.TrimSpace(c.SpecRoot)

	if strings.TrimSpace(c.Autorest) == "" {
		return errors.ConfigurationError("autorest", "generator version or path cannot be empty").
			WithSuggestion(`use "latest", a version such as 2.0.4413, or the path of an AutoRest checkout`)
	}

	if c.Marker == "" {
		return errors.ConfigurationError("marker", "provenance marker cannot be empty")
	}

	if _, err := utils.SplitCommandLine(c.AutorestArgs); err != nil {
		return errors.WrapConfigurationError("autorest-args", "split", err)
	}

	if c.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.WrapConfigurationError("work-dir", "resolve", err)
		}
		c.WorkDir = wd
	}

	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}

	return nil
}

// SplitProjects turns comma separated --projects values into names
func SplitProjects(values []string) []string {
	var names []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
