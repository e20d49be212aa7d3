package release

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
)

// publishArtifact places one artifact into the publish directory and returns
// its manifest entry. Binaries are copied as-is; bundles are copied as trees
// or, when the installer image step is enabled, compressed into one file.
func publishArtifact(cfg *config.Config, artifact *build.Artifact, dir string) (ArtifactEntry, error) {
	entry := ArtifactEntry{
		Platform: artifact.Platform.String(),
		File:     artifact.Name,
		Kind:     string(artifact.Kind),
		Size:     artifact.Size,
	}

	if artifact.Kind != build.KindBundle {
		target := filepath.Join(dir, artifact.Name)
		if err := copyFile(artifact.Path, target); err != nil {
			return entry, err
		}

		checksum, err := FileChecksum(target)
		if err != nil {
			return entry, err
		}

		entry.Checksum = checksum

		return entry, nil
	}

	if cfg.InstallerImage {
		entry.File = artifact.Name + ImageExtension
		entry.Kind = string(build.KindImage)

		target := filepath.Join(dir, entry.File)
		if err := CompressBundle(artifact.Path, target); err != nil {
			return entry, err
		}

		info, err := os.Stat(target)
		if err != nil {
			return entry, fmt.Errorf("stat image: %w", err)
		}

		entry.Size = info.Size()

		checksum, err := FileChecksum(target)
		if err != nil {
			return entry, err
		}

		entry.Checksum = checksum

		return entry, nil
	}

	if err := copyTree(artifact.Path, filepath.Join(dir, artifact.Name)); err != nil {
		return entry, err
	}

	checksum, err := TreeChecksum(artifact.Path)
	if err != nil {
		return entry, err
	}

	entry.Checksum = checksum

	return entry, nil
}

// copyFile copies src to dst preserving the source mode.
func copyFile(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode())
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	return nil
}

// copyTree copies a directory tree from src to dst.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}

		return copyFile(path, target)
	})
}
