// Package release implements the orchestrator that runs the build driver
// once per target platform, each in its own workspace, and publishes the
// produced artifacts.
//
// Platform builds run in parallel and fail independently: one platform's
// BuildFailure never suppresses another platform's publication. After all
// builds finish, artifacts are checksummed, copied (or compressed, for
// bundles) into the publish folder together with a release manifest, and
// optionally mirrored into a tagged release folder.
package release
