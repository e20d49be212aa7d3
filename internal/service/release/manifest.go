package release

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/version"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// ManifestFilename stores the release description published next to the artifacts.
	ManifestFilename = "dataprocessor-release.yaml"

	// DefaultChecksumFunction is used to calculate artifact hashes.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512
)

var errHashUnavailable = errors.New("hash function unavailable")

// Description contains metadata about a published release.
type Description struct {
	// VersionNumber is the semantic version of this release.
	VersionNumber string `yaml:"version"`
	// Tag is the version tag that triggered the release, when any.
	Tag string `yaml:"tag,omitempty"`
	// Artifacts lists the published outputs, sorted by platform.
	Artifacts []ArtifactEntry `yaml:"artifacts"`
	// Failures records platforms whose builds failed.
	Failures []FailureEntry `yaml:"failures,omitempty"`
}

// ArtifactEntry describes one published artifact.
type ArtifactEntry struct {
	// Platform is the target the artifact was built for.
	Platform string `yaml:"platform"`
	// File is the published filename, relative to the publish folder.
	File string `yaml:"file"`
	// Kind is binary, bundle or image.
	Kind string `yaml:"kind"`
	// Size is the artifact size in bytes.
	Size int64 `yaml:"size"`
	// Checksum is the base64-encoded SHA-512 of the published content.
	Checksum string `yaml:"checksum"`
}

// FailureEntry records a platform whose build failed.
type FailureEntry struct {
	// Platform is the target whose build failed.
	Platform string `yaml:"platform"`
	// Error is the failure message.
	Error string `yaml:"error"`
}

// NewDescription produces a Description initialized with build metadata.
func NewDescription(tag string) *Description {
	return &Description{
		VersionNumber: version.Short(),
		Tag:           tag,
	}
}

// Save writes the manifest into the provided directory.
func (d *Description) Save(dir string) error {
	contents, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal release manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFilename)
	if err = os.WriteFile(path, contents, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write release manifest: %w", err)
	}

	return nil
}

// LoadDescription reads a previously published manifest from a directory.
func LoadDescription(dir string) (*Description, error) {
	contents, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("read release manifest: %w", err)
	}

	var d Description
	if err = yaml.Unmarshal(contents, &d); err != nil {
		return nil, fmt.Errorf("unmarshal release manifest: %w", err)
	}

	return &d, nil
}

// FileChecksum returns the base64-encoded checksum of one file.
func FileChecksum(path string) (string, error) {
	if !DefaultChecksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := DefaultChecksumFunction.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), nil
}

// TreeChecksum returns the base64-encoded checksum of a directory tree.
// Relative paths and contents are hashed in lexical walk order, so the
// result is stable across machines.
func TreeChecksum(root string) (string, error) {
	if !DefaultChecksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultChecksumFunction.New()

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		hasher.Write([]byte(filepath.ToSlash(rel)))
		hasher.Write([]byte{0})

		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}

		_, err = io.Copy(hasher, file)
		_ = file.Close()

		return err
	})
	if err != nil {
		return "", fmt.Errorf("calculate tree checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), nil
}
