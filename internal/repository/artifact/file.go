package artifact

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Repository defines persistence operations for a rendered artifact.
type Repository interface {
	// Load returns the current artifact contents or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)
	// Save stores data and reports whether anything was written.
	Save(ctx context.Context, data []byte) (bool, error)
	// Location describes where the artifact lives, for logs.
	Location() string
}

const (
	// DefaultFileMode is the permission of newly created artifacts.
	DefaultFileMode os.FileMode = 0o644
	// directoryMode is used for missing parent directories.
	directoryMode os.FileMode = 0o755
)

// ErrNotFound is returned when the artifact does not exist yet.
var ErrNotFound = errors.New("artifact not found")

// FileRepository stores the artifact as a file on disk.
type FileRepository struct {
	// path is the filesystem location of the artifact.
	path string
	// mode is applied to the artifact on every write.
	mode os.FileMode
}

// NewFileRepository creates a repository that reads and writes the artifact at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
		mode: DefaultFileMode,
	}
}

// Location returns the artifact path.
func (r *FileRepository) Location() string {
	return r.path
}

// Load reads the artifact from disk.
func (r *FileRepository) Load(_ context.Context) ([]byte, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read artifact: %w", err)
	}

	return contents, nil
}

// Save replaces the artifact with data in a single rename.
// When the artifact already holds exactly data, the file is left alone
// and Save reports false.
func (r *FileRepository) Save(ctx context.Context, data []byte) (bool, error) {
	current, err := r.Load(ctx)

	switch {
	case err == nil:
		if bytes.Equal(current, data) {
			return false, nil
		}
	case errors.Is(err, ErrNotFound):
		// First generation.
	default:
		return false, err
	}

	dir := filepath.Dir(r.path)
	if err = os.MkdirAll(dir, directoryMode); err != nil {
		return false, fmt.Errorf("create artifact directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+"-*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temporary artifact: %w", err)
	}

	tmpPath := tmpFile.Name()
	success := false

	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return false, fmt.Errorf("write temporary artifact: %w", err)
	}

	if err = tmpFile.Chmod(r.mode); err != nil {
		_ = tmpFile.Close()
		return false, fmt.Errorf("chmod temporary artifact: %w", err)
	}

	if err = tmpFile.Close(); err != nil {
		return false, fmt.Errorf("close temporary artifact: %w", err)
	}

	if err = os.Rename(tmpPath, r.path); err != nil {
		return false, fmt.Errorf("rename artifact: %w", err)
	}

	success = true

	return true, nil
}

// StreamRepository writes the artifact to an io.Writer. It has nothing to load.
type StreamRepository struct {
	// w receives the artifact.
	w io.Writer
	// name identifies the stream in logs.
	name string
}

// NewStreamRepository creates a repository that writes to w.
func NewStreamRepository(w io.Writer, name string) *StreamRepository {
	return &StreamRepository{w: w, name: name}
}

// Location returns the stream name.
func (r *StreamRepository) Location() string {
	return r.name
}

// Load always reports ErrNotFound.
func (r *StreamRepository) Load(_ context.Context) ([]byte, error) {
	return nil, ErrNotFound
}

// Save writes data to the stream.
func (r *StreamRepository) Save(_ context.Context, data []byte) (bool, error) {
	if _, err := r.w.Write(data); err != nil {
		return false, fmt.Errorf("write artifact to %s: %w", r.name, err)
	}

	return true, nil
}

// Fingerprint returns the hex blake3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)

	return hex.EncodeToString(sum[:])
}
