package cli

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/utils"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a reporter writing through diagnostics
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{diagnostics: diagnostics}
}

// ReportError prints err with its suggestions. Collected failures are listed
// one by one under a count.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && multi.Count() > 1 {
		r.diagnostics.Error("%d project(s) failed", multi.Count())
		r.diagnostics.Indent()
		for _, e := range multi.Errors {
			r.reportCodegenError(e)
		}
		r.diagnostics.Unindent()
		return
	}

	var cgErr errors.CodegenError
	if stderrors.As(err, &cgErr) {
		r.reportCodegenError(cgErr)
		return
	}

	r.diagnostics.Error("%v", err)
}

func (r *DiagnosticReporter) reportCodegenError(err errors.CodegenError) {
	r.diagnostics.Error("%v", err)

	if r.verbose() {
		r.printContext(err.Context())
		r.printCauses(err.Unwrap())
	}

	hints := append(slices.Clone(err.Suggestions()), additionalHelp(err)...)
	r.diagnostics.Suggestions(dedupe(hints))
}

func (r *DiagnosticReporter) verbose() bool {
	return r.diagnostics.Level() >= utils.DiagnosticVerbose
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	for _, key := range slices.Sorted(maps.Keys(context)) {
		r.diagnostics.Verbose("  %s: %v", formatContextKey(key), context[key])
	}
}

// printCauses walks the wrapped error chain
func (r *DiagnosticReporter) printCauses(cause error) {
	for level := 1; cause != nil; level++ {
		r.diagnostics.Verbose("  cause %d: %s", level, cause)
		cause = stderrors.Unwrap(cause)
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// additionalHelp returns hints that depend on the kind of failure rather
// than on the individual error
func additionalHelp(err errors.CodegenError) []string {
	switch err.ErrorCode() {
	case errors.ProcessExitErrorCode:
		if project, ok := err.Context()["project"]; ok {
			return []string{fmt.Sprintf("rerun with --projects %v --await to see only this generator's output", project)}
		}
	case errors.ConfigurationErrorCode:
		return []string{"flags override " + EnvPrefix + "* environment variables, check both"}
	case errors.RegistryErrorCode:
		return []string{"check the file passed with --registry, or omit it to use the built-in registry"}
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
