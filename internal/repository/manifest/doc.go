// Package manifest implements persistence for the declared dependency
// manifest.
//
// The FileRepository reads and writes a requirements-style text file and
// exposes a Repository interface that the build driver depends on to check
// hidden imports against declared packages.
package manifest
