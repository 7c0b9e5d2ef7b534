package registry

import (
	"path/filepath"
	"strings"

	"github.com/toyz/sdkregen/internal/errors"
)

// Variant selects how the generator reads a project's specification
type Variant string

const (
	// VariantDefault reads a single specification document
	VariantDefault Variant = ""
	// VariantComposite reads a specification that merges several documents
	VariantComposite Variant = "CompositeSwagger"
)

// Valid reports whether v is a known variant
func (v Variant) Valid() bool {
	return v == VariantDefault || v == VariantComposite
}

// Descriptor describes how one SDK project is generated
type Descriptor struct {
	// Name is the unique key used with --projects
	Name string

	// OutputDirectory is where the generator writes the project, relative
	// to the working directory
	OutputDirectory string

	// SpecSource is the specification path relative to the spec root
	SpecSource string

	// Namespace is the dotted Java package of the generated sources
	Namespace string

	// Tag is an optional AutoRest --tag emitted next to the namespace
	Tag string

	// ExtraArgs is appended verbatim to the generator command line
	ExtraArgs string

	// GeneratorVariant selects the input mode
	GeneratorVariant Variant

	// Fluent toggles --fluent; nil means enabled
	Fluent *bool

	// Location is the registry entry this descriptor was loaded from
	Location errors.SourceLocation
}

// IsFluent reports whether the fluent API flag is generated
func (d Descriptor) IsFluent() bool {
	return d.Fluent == nil || *d.Fluent
}

// SpecLocation joins root and the spec source with "/". The root may be a
// URL, so filesystem separators are never used.
func (d Descriptor) SpecLocation(root string) string {
	return root + "/" + d.SpecSource
}

// NamespacePath converts the namespace into a relative directory path
func (d Descriptor) NamespacePath() string {
	return filepath.FromSlash(strings.ReplaceAll(d.Namespace, ".", "/"))
}

// CleanupTarget is the directory holding the generated Java sources:
// OutputDirectory/src/main/java/<namespace as path>
func (d Descriptor) CleanupTarget() string {
	return filepath.Join(d.OutputDirectory, "src", "main", "java", d.NamespacePath())
}

// Bool returns a pointer to v, for setting Descriptor.Fluent
func Bool(v bool) *bool {
	return &v
}
