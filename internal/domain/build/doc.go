// Package build holds the domain model shared by the driver and the
// orchestrator: target platforms with their naming conventions, produced
// artifacts, and per-platform results.
package build
