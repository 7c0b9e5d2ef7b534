package errors

import "fmt"

// UnknownProject reports a project name that is not in the registry
func UnknownProject(name string) *BaseError {
	return Newf(UnknownProjectErrorCode, "Invalid project name %q!", name).
		WithContext("project", name).
		WithSuggestion("run sdkregen without a command to list the registered projects")
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileAccessErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapCleanupError attaches the project a cleanup failure belongs to
func WrapCleanupError(project, target string, cause error) *BaseError {
	message := fmt.Sprintf("cleanup of project %q aborted in '%s'", project, target)
	return Wrap(FileAccessErrorCode, message, cause).
		WithContext("project", project).
		WithContext("path", target).
		WithSuggestion("fix the file permissions or rerun with --preserve to keep existing sources")
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// RegistryError reports an invalid registry entry
func RegistryError(loc SourceLocation, project, message string) *BaseError {
	err := New(RegistryErrorCode, message).WithLocation(loc)
	if project != "" {
		err.WithContext("project", project)
	}
	return err
}

// WrapRegistryError wraps failures to read or decode registry data
func WrapRegistryError(source string, cause error) *BaseError {
	message := fmt.Sprintf("failed to load project registry '%s'", source)
	return Wrap(RegistryErrorCode, message, cause).
		WithContext("source", source)
}

// WrapLaunchError wraps a generator process that could not be started
func WrapLaunchError(project string, cause error) *BaseError {
	message := fmt.Sprintf("failed to launch generator for project %q", project)
	return Wrap(LaunchErrorCode, message, cause).
		WithContext("project", project).
		WithSuggestion("check that the --autorest executable is installed and on PATH")
}

// WrapProcessExitError wraps a generator process that finished unsuccessfully
func WrapProcessExitError(project string, cause error) *BaseError {
	message := fmt.Sprintf("generator for project %q failed", project)
	return Wrap(ProcessExitErrorCode, message, cause).
		WithContext("project", project)
}
