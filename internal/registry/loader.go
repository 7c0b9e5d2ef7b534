package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/toyz/sdkregen/internal/errors"
)

//go:embed projects.yaml
var embeddedProjects []byte

// DefaultSource names the embedded registry in diagnostics
const DefaultSource = "projects.yaml"

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return Parse(DefaultSource, bytes.NewReader(embeddedProjects))
})

// Default returns the registry built into the binary
func Default() (*Registry, error) {
	return defaultRegistry()
}

// Load reads a registry data file from disk
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapRegistryError(path, err)
	}
	defer f.Close()

	return Parse(path, f)
}

type registryFile struct {
	Projects []entry `yaml:"projects"`
}

type entry struct {
	Name      string  `yaml:"name"`
	Dir       string  `yaml:"dir"`
	Source    string  `yaml:"source"`
	Namespace string  `yaml:"namespace"`
	Tag       string  `yaml:"tag"`
	Args      string  `yaml:"args"`
	Modeler   Variant `yaml:"modeler"`
	Fluent    *bool   `yaml:"fluent"`

	line int
}

var entryFields = map[string]bool{
	"name": true, "dir": true, "source": true, "namespace": true,
	"tag": true, "args": true, "modeler": true, "fluent": true,
}

// UnmarshalYAML records the entry's line and rejects unknown keys
func (e *entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var unknown []string
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i].Value; !entryFields[key] {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return fmt.Errorf("line %d: unknown project field(s) %s", node.Line, strings.Join(unknown, ", "))
		}
	}

	type plain entry
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line = node.Line
	return nil
}

// Parse decodes registry data. source names the data in error messages.
func Parse(source string, r io.Reader) (*Registry, error) {
	var file registryFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, errors.WrapRegistryError(source, fmt.Errorf("no projects defined"))
		}
		return nil, errors.WrapRegistryError(source, err)
	}
	if len(file.Projects) == 0 {
		return nil, errors.WrapRegistryError(source, fmt.Errorf("no projects defined"))
	}

	descriptors := make([]Descriptor, 0, len(file.Projects))
	for _, e := range file.Projects {
		descriptors = append(descriptors, Descriptor{
			Name:             e.Name,
			OutputDirectory:  e.Dir,
			SpecSource:       e.Source,
			Namespace:        e.Namespace,
			Tag:              e.Tag,
			ExtraArgs:        e.Args,
			GeneratorVariant: e.Modeler,
			Fluent:           e.Fluent,
			Location:         errors.SourceLocation{File: source, Line: e.line},
		})
	}

	return New(descriptors...)
}
