package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/utils"
)

// Validator checks a descriptor before it is added to a registry
type Validator func(d *Descriptor, existing map[string]int) error

// Registry is an immutable, ordered set of project descriptors
type Registry struct {
	names []string
	items map[string]Descriptor
}

// New builds a registry from descriptors, keeping their order. Every
// descriptor is validated.
func New(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		names: make([]string, 0, len(descriptors)),
		items: make(map[string]Descriptor, len(descriptors)),
	}

	validate := ChainValidators(
		NotEmptyNameValidator(),
		NoDuplicateValidator(),
		RequiredFieldsValidator(),
		NamespaceValidator(),
		VariantValidator(),
		ArgsValidator(),
	)

	index := make(map[string]int, len(descriptors))
	for i := range descriptors {
		d := descriptors[i]
		if err := validate(&d, index); err != nil {
			return nil, err
		}
		index[d.Name] = i
		r.names = append(r.names, d.Name)
		r.items[d.Name] = d
	}

	return r, nil
}

// Lookup returns the descriptor registered under name
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.items[name]
	if !ok {
		return Descriptor{}, errors.UnknownProject(name)
	}
	return d, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Names returns every project name in registration order
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered projects
func (r *Registry) Len() int {
	return len(r.names)
}

// Resolve maps a selection onto descriptors. An empty selection selects
// every project in registration order. Blanks inside names are ignored,
// empty names are skipped and repeated names are generated once. If any
// name is unknown nothing is returned, so callers never act on a partial
// selection.
func (r *Registry) Resolve(selection []string) ([]Descriptor, error) {
	if len(selection) == 0 {
		all := make([]Descriptor, 0, len(r.names))
		for _, name := range r.names {
			all = append(all, r.items[name])
		}
		return all, nil
	}

	unknown := errors.NewMultipleErrors()
	seen := make(map[string]bool, len(selection))
	resolved := make([]Descriptor, 0, len(selection))

	for _, raw := range selection {
		name := strings.ReplaceAll(raw, " ", "")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		d, ok := r.items[name]
		if !ok {
			unknown.Add(errors.UnknownProject(name))
			continue
		}
		resolved = append(resolved, d)
	}

	if err := unknown.ErrOrNil(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// ChainValidators combines multiple validators into one
func ChainValidators(validators ...Validator) Validator {
	return func(d *Descriptor, existing map[string]int) error {
		for _, validator := range validators {
			if validator != nil {
				if err := validator(d, existing); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// NotEmptyNameValidator validates that the project name is set
func NotEmptyNameValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		if strings.TrimSpace(d.Name) == "" {
			return errors.RegistryError(d.Location, "", "project name cannot be empty")
		}
		if strings.ContainsAny(d.Name, " ,") {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("project name %q cannot contain blanks or commas", d.Name))
		}
		return nil
	}
}

// NoDuplicateValidator validates that a project name is registered once
func NoDuplicateValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		if _, exists := existing[d.Name]; exists {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("project %q is already registered", d.Name))
		}
		return nil
	}
}

// RequiredFieldsValidator validates the directory, source and namespace fields
func RequiredFieldsValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		required := []struct {
			field string
			value string
		}{
			{"dir", d.OutputDirectory},
			{"source", d.SpecSource},
			{"namespace", d.Namespace},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return errors.RegistryError(d.Location, d.Name,
					fmt.Sprintf("project %q is missing %s", d.Name, r.field))
			}
		}
		return nil
	}
}

// NamespaceValidator validates that the namespace is a plain dotted package.
// Options written after the package would leak into the cleanup path, so
// they must go into the tag or args fields instead.
func NamespaceValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		ns, err := ParseNamespace(d.Namespace)
		if err != nil {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("project %q has an invalid namespace %q", d.Name, d.Namespace)).
				WithCause(err)
		}
		if len(ns.Options) > 0 {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("namespace of project %q embeds options %v", d.Name, ns.Options)).
				WithSuggestion(fmt.Sprintf("set namespace to %q and move the options into the tag or args fields", ns.Package))
		}
		return nil
	}
}

// VariantValidator validates the generator variant
func VariantValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		if !d.GeneratorVariant.Valid() {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("project %q has unknown modeler %q", d.Name, d.GeneratorVariant)).
				WithSuggestion(fmt.Sprintf("use %q or leave modeler empty", VariantComposite))
		}
		return nil
	}
}

// ArgsValidator checks that ExtraArgs is a well-formed shell fragment
func ArgsValidator() Validator {
	return func(d *Descriptor, existing map[string]int) error {
		if _, err := utils.SplitCommandLine(d.ExtraArgs); err != nil {
			return errors.RegistryError(d.Location, d.Name,
				fmt.Sprintf("project %q has malformed args %q", d.Name, d.ExtraArgs)).
				WithCause(err)
		}
		return nil
	}
}
