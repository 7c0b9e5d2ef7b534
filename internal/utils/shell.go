package utils

import (
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

const shellOperators = ";&|<>"

// SplitCommandLine splits s into words the way a POSIX shell would, without
// expanding variables. Unquoted operators such as ">", "2>", "|" or ";" are
// returned as words of their own instead of ending the split.
func SplitCommandLine(s string) ([]string, error) {
	words := []string{}
	rest := []rune(s)

	for len(rest) > 0 {
		parser := shellwords.NewParser()
		args, err := parser.Parse(string(rest))
		if err != nil {
			return nil, err
		}
		words = append(words, args...)
		if parser.Position < 0 {
			break
		}

		// Position is a rune offset; a file descriptor prefix such as "2>"
		// is left in front of the operator.
		rest = rest[parser.Position:]
		n := 0
		for n < len(rest) && unicode.IsDigit(rest[n]) {
			n++
		}
		for n < len(rest) && strings.ContainsRune(shellOperators, rest[n]) {
			n++
		}
		if n >= 2 && rest[n-2] == '>' && rest[n-1] == '&' {
			for n < len(rest) && (unicode.IsDigit(rest[n]) || rest[n] == '-') {
				n++
			}
		}
		if n == 0 {
			n = 1
		}
		words = append(words, string(rest[:n]))
		rest = rest[n:]
	}

	return words, nil
}
