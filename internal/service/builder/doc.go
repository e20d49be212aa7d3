// Package builder implements the build driver.
//
// It derives a deterministic argument list from the build configuration,
// invokes the external packaging tool for one target platform, verifies the
// expected artifact exists afterwards, and reports the produced artifact.
// Tool failures surface as BuildFailure carrying the tool's captured output.
package builder
