package cli

import (
	"runtime"
	"strings"
)

// Arg is one generator argument. Flags render as "--flag" or
// "--flag=value"; positional arguments have no Flag.
type Arg struct {
	Flag  string
	Value string
	// Raw marks Value as a shell fragment that is written to the command
	// line as is, so its quoting, variables and redirections reach the shell
	Raw bool
}

// String renders the argument as it appears on the command line
func (a Arg) String() string {
	switch {
	case a.Flag == "":
		return a.Value
	case a.Value == "":
		return a.Flag
	default:
		return a.Flag + "=" + a.Value
	}
}

// Command is a generator invocation kept as structured arguments until it
// reaches the process boundary
type Command struct {
	// Project is the registry name the command generates
	Project string
	// Program is the executable, e.g. "autorest" or "node"
	Program string
	// Args follow Program in order
	Args []Arg
}

// Value returns the value of the first argument carrying flag
func (c *Command) Value(flag string) (string, bool) {
	for _, arg := range c.Args {
		if arg.Flag == flag {
			return arg.Value, true
		}
	}
	return "", false
}

// Has reports whether flag appears in the command
func (c *Command) Has(flag string) bool {
	_, ok := c.Value(flag)
	return ok
}

// String serializes the command into a single shell command line. Raw
// arguments are appended unquoted.
func (c *Command) String() string {
	windows := runtime.GOOS == "windows"

	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Program, windows))
	for _, arg := range c.Args {
		if arg.Raw {
			parts = append(parts, arg.Value)
			continue
		}
		parts = append(parts, quoteArg(arg.String(), windows))
	}
	return strings.Join(parts, " ")
}

// quoteArg quotes s for sh, or for cmd.exe when windows is set. cmd.exe
// takes a doubled quote as a literal quote inside a quoted argument; it
// still expands %VAR% there.
func quoteArg(s string, windows bool) string {
	if s == "" {
		if windows {
			return `""`
		}
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool { return !isShellSafe(r, windows) }) < 0 {
		return s
	}
	if windows {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(r rune, windows bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("-_./:=,@%+", r):
		return true
	case windows && r == '\\':
		return true
	}
	return false
}
