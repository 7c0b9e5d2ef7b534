package registry

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Namespace is a parsed namespace field
type Namespace struct {
	// Package is the dotted package identity
	Package string
	// Options holds command-line options written after the package,
	// e.g. "--tag=package-2016-09"
	Options []string
}

type namespaceAST struct {
	Segments []string `parser:"@Ident ( '.' @Ident )*"`
	Options  []string `parser:"@Option*"`
}

var namespaceParser = participle.MustBuild[namespaceAST](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Option", Pattern: `--?[a-zA-Z][a-zA-Z0-9-]*(=\S*)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
		{Name: "Punct", Pattern: `\.`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// ParseNamespace parses a dotted Java package optionally followed by
// command-line options
func ParseNamespace(s string) (*Namespace, error) {
	ast, err := namespaceParser.ParseString("namespace", s)
	if err != nil {
		return nil, err
	}

	return &Namespace{
		Package: strings.Join(ast.Segments, "."),
		Options: ast.Options,
	}, nil
}
