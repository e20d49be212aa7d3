package release

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ImageExtension is the suffix of compressed installer images.
const ImageExtension = ".tar.zst"

// CompressBundle archives a bundle directory into a zstd-compressed tarball.
// The archive stores paths relative to the bundle's parent, so extracting
// recreates the bundle directory itself.
func CompressBundle(bundleDir, archivePath string) (err error) {
	out, err := os.Create(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}

	tw := tar.NewWriter(zw)

	if err = appendTree(tw, bundleDir); err != nil {
		return err
	}

	if err = tw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	return nil
}

// ExtractBundle unpacks an archive produced by CompressBundle into dir.
func ExtractBundle(archivePath, dir string) error {
	in, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = in.Close()
	}()

	zr, err := zstd.NewReader(in)
	if err != nil {
		return fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		// Refuse entries escaping the target directory.
		target := filepath.Join(dir, filepath.Clean("/"+header.Name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(target, header.FileInfo().Mode()); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
		case tar.TypeReg:
			if err = extractFile(tr, target, header.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}
}

// appendTree writes every entry under root into the tar stream, with paths
// relative to root's parent.
func appendTree(tw *tar.Writer, root string) error {
	base := filepath.Dir(root)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("tar header: %w", err)
		}

		header.Name = filepath.ToSlash(rel)

		if err = tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write tar header: %w", err)
		}

		if info.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}

		_, err = io.Copy(tw, file)
		_ = file.Close()

		if err != nil {
			return fmt.Errorf("write tar entry: %w", err)
		}

		return nil
	})
}

// extractFile writes one regular file from the tar stream.
func extractFile(tr *tar.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	out, err := os.OpenFile(filepath.Clean(target), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	//nolint:gosec // Archives are produced by this program, not untrusted input.
	_, err = io.Copy(out, tr)

	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("extract file: %w", err)
	}

	return nil
}
