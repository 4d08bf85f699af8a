package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
)

// Ensure FileFetcher implements the interface.
var _ driven.DatasetFetcher = (*FileFetcher)(nil)

// FileFetcher reads datasets from the local filesystem. Relative paths are
// resolved against BaseDir.
type FileFetcher struct {
	BaseDir string

	// limit caps file size like HTTPFetcher caps response bodies.
	limit int64
}

// NewFileFetcher creates a file fetcher rooted at baseDir. An empty baseDir
// resolves relative paths against the working directory.
func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{BaseDir: baseDir, limit: maxBodySize}
}

// Fetch reads the file at location. A missing file maps to an HTTP 404
// LoadError so callers treat it like a missing remote dataset.
func (f *FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.Resolve(location)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.NewHTTPError(404))
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer file.Close()

	limit := f.limit
	if limit <= 0 {
		limit = maxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, domain.NewFormatError(fmt.Sprintf("%s exceeds %d bytes", path, limit), nil)
	}
	return data, nil
}

// Resolve converts a location (plain path or file:// URL) into a filesystem
// path.
func (f *FileFetcher) Resolve(location string) (string, error) {
	path := location
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return "", fmt.Errorf("parsing %q: %w", location, domain.ErrInvalidInput)
		}
		path = u.Path
	}
	if path == "" {
		return "", fmt.Errorf("empty dataset path: %w", domain.ErrInvalidInput)
	}

	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) && f.BaseDir != "" {
		path = filepath.Join(f.BaseDir, path)
	}
	return path, nil
}
