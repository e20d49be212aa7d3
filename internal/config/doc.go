// Package config defines the build configuration shared by the driver and
// orchestrator binaries and provides helpers to load, validate and save it
// in YAML format.
//
// The Config type holds the entry-point script, application name, optional
// per-platform icons, hidden imports, and the knobs that shape the packaging
// tool invocation. Validation failures surface as ConfigurationError before
// any tool is run.
package config
