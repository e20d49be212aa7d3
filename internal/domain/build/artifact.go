package build

import "time"

// Kind classifies the shape of a produced artifact.
type Kind string

const (
	// KindBinary is a single self-contained executable.
	KindBinary Kind = "binary"
	// KindBundle is a directory-structured application package.
	KindBundle Kind = "bundle"
	// KindImage is a compressed installer image derived from a bundle.
	KindImage Kind = "image"
)

// Artifact is the packaged output of one driver invocation.
// Ownership transfers to the orchestrator after creation.
type Artifact struct {
	// Platform is the target the artifact was built for.
	Platform Platform
	// Name is the artifact filename, e.g. DataProcessor.exe.
	Name string
	// Path is where the artifact lives on disk.
	Path string
	// Kind distinguishes binaries from bundle directories.
	Kind Kind
	// Size is the artifact size in bytes; for bundles, the sum of the tree.
	Size int64
}

// Result is the per-platform outcome collected by the orchestrator.
type Result struct {
	// Platform is the target this result describes.
	Platform Platform
	// Artifact is non-nil on success.
	Artifact *Artifact
	// Err is non-nil when the build failed for this platform.
	Err error
	// Duration is how long the build took.
	Duration time.Duration
}

// Succeeded reports whether the build produced an artifact.
func (r *Result) Succeeded() bool {
	return r.Err == nil && r.Artifact != nil
}
