package manifest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
)

// Repository defines persistence operations for the dependency manifest.
type Repository interface {
	Load(ctx context.Context) (*Manifest, error)
	Save(ctx context.Context, m *Manifest) error
}

// Manifest is the declared set of third-party packages the application needs.
// Entries stay in declaration order; versions are whatever the file states.
type Manifest struct {
	// Entries are the declared packages.
	Entries []Entry
}

// Entry is one declared package.
type Entry struct {
	// Name is the package name, lower-cased.
	Name string
	// Constraint is the raw version constraint, e.g. ">=1.5", or "".
	Constraint string
}

// Names returns the declared package names in declaration order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		names = append(names, e.Name)
	}

	return names
}

// Contains reports whether a module name belongs to a declared package.
// A dotted module path matches on its first segment, so
// "pandas._libs.lib" is covered by a declared "pandas".
func (m *Manifest) Contains(module string) bool {
	root, _, _ := strings.Cut(module, ".")
	root = strings.ToLower(root)

	for _, e := range m.Entries {
		if e.Name == root {
			return true
		}
	}

	return false
}

// FileRepository persists the manifest as a requirements-style text file:
// one package per line, optional version constraint, # comments.
type FileRepository struct {
	// path is the filesystem location of the manifest file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("dependency manifest not found")

// constraintMarkers split a requirement line into name and version constraint.
var constraintMarkers = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// NewFileRepository creates a repository that reads/writes the manifest at
// the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads and parses the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	return parse(contents)
}

// Save writes the manifest back to disk in the same line-oriented format.
func (r *FileRepository) Save(_ context.Context, m *Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var builder strings.Builder
	for _, e := range m.Entries {
		builder.WriteString(e.Name)
		builder.WriteString(e.Constraint)
		builder.WriteString("\n")
	}

	if err := os.WriteFile(r.path, []byte(builder.String()), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}

// parse splits manifest contents into entries, skipping blanks and comments.
func parse(contents []byte) (*Manifest, error) {
	var (
		m       Manifest
		scanner = bufio.NewScanner(bytes.NewReader(contents))
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Inline comments end the requirement.
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		name, constraint := line, ""

		for _, marker := range constraintMarkers {
			if i := strings.Index(line, marker); i >= 0 {
				name = strings.TrimSpace(line[:i])
				constraint = strings.TrimSpace(line[i:])

				break
			}
		}

		m.Entries = append(m.Entries, Entry{
			Name:       strings.ToLower(name),
			Constraint: constraint,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return &m, nil
}
