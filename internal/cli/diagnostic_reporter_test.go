package cli

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/utils"
)

func newTestReporter(level utils.DiagnosticLevel) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	d := utils.NewDiagnosticSystem(level).WithWriters(out, errOut)
	return NewDiagnosticReporter(d), out, errOut
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	t.Run("unknown project", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(errors.UnknownProject("foo"))

		assert.Equal(t, "[ERROR] Invalid project name \"foo\"!\n"+
			"  hint: run sdkregen without a command to list the registered projects\n", errOut.String())
	})

	t.Run("plain error", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(stderrors.New(`unknown command "generate" for "sdkregen"`))

		assert.Equal(t, "[ERROR] unknown command \"generate\" for \"sdkregen\"\n", errOut.String())
	})

	t.Run("nil error", func(t *testing.T) {
		reporter, out, errOut := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(nil)

		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("process exit adds rerun hint", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(errors.WrapProcessExitError("beta", stderrors.New("exit status 2")))

		assert.Contains(t, errOut.String(), `generator for project "beta" failed: exit status 2`)
		assert.Contains(t, errOut.String(), "hint: rerun with --projects beta --await")
	})

	t.Run("configuration adds environment hint", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(errors.ConfigurationError("marker", "provenance marker cannot be empty"))

		assert.Contains(t, errOut.String(), "hint: flags override SDKREGEN_* environment variables")
	})

	t.Run("multiple failures are listed", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)
		multi := errors.NewMultipleErrors()
		multi.Add(errors.WrapProcessExitError("alpha", stderrors.New("exit status 1")))
		multi.Add(errors.WrapProcessExitError("beta", stderrors.New("exit status 2")))

		reporter.ReportError(multi)

		lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
		assert.Equal(t, "[ERROR] 2 project(s) failed", lines[0])
		assert.Contains(t, errOut.String(), "  [ERROR] generator for project \"alpha\" failed")
		assert.Contains(t, errOut.String(), "  [ERROR] generator for project \"beta\" failed")
	})

	t.Run("single collected failure", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)
		multi := errors.NewMultipleErrors()
		multi.Add(errors.UnknownProject("foo"))

		reporter.ReportError(multi)

		assert.True(t, strings.HasPrefix(errOut.String(), "[ERROR] Invalid project name \"foo\"!\n"))
		assert.NotContains(t, errOut.String(), "project(s) failed")
	})

	t.Run("duplicate hints are printed once", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(utils.DiagnosticInfo)
		err := errors.ConfigurationError("spec-root", "specification root cannot be empty").
			WithSuggestion("flags override SDKREGEN_* environment variables, check both")

		reporter.ReportError(err)

		assert.Equal(t, 1, strings.Count(errOut.String(), "hint: flags override"))
	})
}

func TestDiagnosticReporter_Verbose(t *testing.T) {
	t.Run("context and causes", func(t *testing.T) {
		reporter, out, _ := newTestReporter(utils.DiagnosticVerbose)
		cause := errors.WrapFileSystemError("remove", "/out/A.java", stderrors.New("permission denied"))

		reporter.ReportError(errors.WrapCleanupError("alpha", "/out", cause))

		assert.Contains(t, out.String(), "[VERBOSE]   Path: /out\n")
		assert.Contains(t, out.String(), "[VERBOSE]   Project: alpha\n")
		assert.Contains(t, out.String(), "cause 1: failed to remove file '/out/A.java'")
		assert.Contains(t, out.String(), "cause 2: permission denied")
		assert.Less(t, strings.Index(out.String(), "Path:"), strings.Index(out.String(), "Project:"))
	})

	t.Run("hidden at info level", func(t *testing.T) {
		reporter, out, _ := newTestReporter(utils.DiagnosticInfo)

		reporter.ReportError(errors.WrapCleanupError("alpha", "/out", stderrors.New("permission denied")))

		assert.Empty(t, out.String())
	})
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Type", formatContextKey("config_type"))
	assert.Equal(t, "Project", formatContextKey("project"))
	assert.Equal(t, "", formatContextKey(""))
}
