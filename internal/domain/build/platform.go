package build

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies a packaging target.
type Platform string

const (
	// Windows produces a single .exe binary.
	Windows Platform = "windows"
	// Darwin produces a .app bundle directory.
	Darwin Platform = "darwin"
	// Linux produces a single binary with no extension.
	Linux Platform = "linux"
)

// ErrUnknownPlatform is returned for platform identifiers outside Supported.
var ErrUnknownPlatform = errors.New("unknown platform")

// Supported returns all platforms the driver can target, in stable order.
func Supported() []Platform {
	return []Platform{Windows, Darwin, Linux}
}

// ParsePlatform converts user input into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case Windows:
		return Windows, nil
	case Darwin:
		return Darwin, nil
	case Linux:
		return Linux, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}

// Host returns the platform matching the current operating system.
func Host() (Platform, error) {
	return ParsePlatform(runtime.GOOS)
}

// Bundled reports whether the platform produces a bundle directory
// rather than a single binary.
func (p Platform) Bundled() bool {
	return p == Darwin
}

// ArtifactName returns the artifact filename for an application name,
// following platform convention.
func (p Platform) ArtifactName(appName string) string {
	switch p {
	case Windows:
		return appName + ".exe"
	case Darwin:
		return appName + ".app"
	default:
		return appName
	}
}

// IconExtension returns the icon file extension the platform expects,
// or "" when the platform has no icon convention.
func (p Platform) IconExtension() string {
	switch p {
	case Windows:
		return ".ico"
	case Darwin:
		return ".icns"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}
