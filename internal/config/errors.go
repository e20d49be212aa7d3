package config

import "errors"

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEntryRequired is returned when the entry-point script is missing.
	errEntryRequired = errors.New("entry-point script must be provided")
	// errNameRequired is returned when the application name is missing.
	errNameRequired = errors.New("application name must be provided")
	// errIconsUnsupported is returned when an icon is declared for a platform without icon support.
	errIconsUnsupported = errors.New("platform does not support icons")
	// errIconExtension is returned when an icon file breaks the platform extension convention.
	errIconExtension = errors.New("icon extension does not match platform convention")
)

// ConfigurationError reports a problem with the build configuration detected
// before the packaging tool is ever invoked.
type ConfigurationError struct {
	// Field is the configuration field that failed validation.
	Field string
	// Path is the offending filesystem path, when one is involved.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error renders the field, the path when present, and the cause.
func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return "configuration: " + e.Field + " (" + e.Path + "): " + e.Err.Error()
	}

	return "configuration: " + e.Field + ": " + e.Err.Error()
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
