package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{UnknownProjectErrorCode, "UnknownProject"},
		{ConfigurationErrorCode, "ConfigurationError"},
		{RegistryErrorCode, "RegistryError"},
		{FileAccessErrorCode, "FileAccessError"},
		{LaunchErrorCode, "LaunchError"},
		{ProcessExitErrorCode, "ProcessExitError"},
		{UnknownErrorCode, "UnknownError"},
		{ErrorCode(999), "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestBaseErrorMessage(t *testing.T) {
	cause := stderrors.New("permission denied")

	t.Run("plain", func(t *testing.T) {
		err := New(ConfigurationErrorCode, "bad value")
		assert.Equal(t, "bad value", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with location and cause", func(t *testing.T) {
		err := Wrap(RegistryErrorCode, "broken entry", cause).
			WithLocation(SourceLocation{File: "projects.yaml", Line: 12})
		assert.Equal(t, "projects.yaml:12: broken entry: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("context defaults to empty map", func(t *testing.T) {
		err := &BaseError{Code: UnknownErrorCode}
		assert.NotNil(t, err.Context())
		assert.Empty(t, err.Context())
	})
}

func TestSourceLocationString(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.yaml", SourceLocation{File: "a.yaml"}.String())
	assert.Equal(t, "a.yaml:3", SourceLocation{File: "a.yaml", Line: 3}.String())
}

func TestUnknownProject(t *testing.T) {
	err := UnknownProject("foo")

	assert.Equal(t, `Invalid project name "foo"!`, err.Error())
	assert.Equal(t, UnknownProjectErrorCode, err.ErrorCode())
	assert.Equal(t, "foo", err.Context()["project"])
	assert.NotEmpty(t, err.Suggestions())
}

func TestWrappers(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name     string
		err      *BaseError
		code     ErrorCode
		expected string
	}{
		{
			name:     "file system",
			err:      WrapFileSystemError("read", "a/b.java", cause),
			code:     FileAccessErrorCode,
			expected: "failed to read file 'a/b.java': boom",
		},
		{
			name:     "cleanup",
			err:      WrapCleanupError("compute", "out/src", cause),
			code:     FileAccessErrorCode,
			expected: `cleanup of project "compute" aborted in 'out/src': boom`,
		},
		{
			name:     "configuration",
			err:      WrapConfigurationError("environment", "parse", cause),
			code:     ConfigurationErrorCode,
			expected: "failed to parse configuration 'environment': boom",
		},
		{
			name:     "registry",
			err:      WrapRegistryError("projects.yaml", cause),
			code:     RegistryErrorCode,
			expected: "failed to load project registry 'projects.yaml': boom",
		},
		{
			name:     "launch",
			err:      WrapLaunchError("dns", cause),
			code:     LaunchErrorCode,
			expected: `failed to launch generator for project "dns": boom`,
		},
		{
			name:     "process exit",
			err:      WrapProcessExitError("dns", cause),
			code:     ProcessExitErrorCode,
			expected: `generator for project "dns" failed: boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Equal(t, tt.code, tt.err.ErrorCode())
			assert.True(t, stderrors.Is(tt.err, cause))
		})
	}
}

func TestMultipleErrors(t *testing.T) {
	cause := stderrors.New("denied")
	multi := NewMultipleErrors()

	require.NoError(t, multi.ErrOrNil())
	assert.True(t, multi.IsEmpty())
	assert.Equal(t, "no errors", multi.Error())

	multi.Add(WrapCleanupError("a", "x", cause))
	assert.Equal(t, `cleanup of project "a" aborted in 'x': denied`, multi.Error())

	multi.Add(WrapProcessExitError("b", cause))
	assert.Equal(t, 2, multi.Count())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.Equal(t, FileAccessErrorCode, multi.ErrorCode())
	assert.True(t, multi.HasCode(ProcessExitErrorCode))
	assert.False(t, multi.HasCode(LaunchErrorCode))
	assert.True(t, stderrors.Is(multi, cause))
	assert.NotEmpty(t, multi.Suggestions())

	var base *BaseError
	require.True(t, stderrors.As(multi.ErrOrNil(), &base))
	assert.Equal(t, FileAccessErrorCode, base.ErrorCode())
}

func TestHasCode(t *testing.T) {
	inner := UnknownProject("x")
	wrapped := fmt.Errorf("resolve: %w", inner)
	joined := stderrors.Join(stderrors.New("other"), wrapped)

	assert.True(t, HasCode(inner, UnknownProjectErrorCode))
	assert.True(t, HasCode(wrapped, UnknownProjectErrorCode))
	assert.True(t, HasCode(joined, UnknownProjectErrorCode))
	assert.False(t, HasCode(wrapped, FileAccessErrorCode))
	assert.False(t, HasCode(nil, UnknownProjectErrorCode))
}
