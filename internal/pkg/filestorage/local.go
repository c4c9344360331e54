package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rcastro/tutormatch/internal/pkg/logger"
)

// LocalStorage stores bucket files on the local filesystem under a base
// directory, one subdirectory per bucket.
type LocalStorage struct {
	basePath string
	baseURL  string

	mu     sync.RWMutex
	public map[string]bool
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the root
// directory; baseURL is prepended to public file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
		public:   make(map[string]bool),
	}, nil
}

// EnsureBucket creates the bucket directory if it does not exist yet
func (ls *LocalStorage) EnsureBucket(name string, public bool) error {
	dir := filepath.Join(ls.basePath, name)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("bucket", name).Msg("Failed to create bucket directory")
		return fmt.Errorf("failed to create bucket %s: %w", name, err)
	}

	ls.mu.Lock()
	ls.public[name] = public
	ls.mu.Unlock()

	logger.Debug().Str("bucket", name).Bool("public", public).Msg("Bucket ensured")
	return nil
}

// Save writes the content under bucket/filename and returns file info
func (ls *LocalStorage) Save(bucket, filename string, content []byte) (*StoredFile, error) {
	dstPath := filepath.Join(ls.basePath, bucket, filename)

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create file directory")
		return nil, fmt.Errorf("failed to save file %s: %w", filename, err)
	}
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file")
		return nil, fmt.Errorf("failed to save file %s: %w", filename, err)
	}

	return &StoredFile{
		Bucket: bucket,
		Name:   filename,
		Path:   bucket + "/" + filename,
		URL:    ls.URL(bucket, filename),
		Size:   int64(len(content)),
	}, nil
}

// Delete removes a file from a bucket. Missing files are not an error.
func (ls *LocalStorage) Delete(bucket, filename string) error {
	dstPath := filepath.Join(ls.basePath, bucket, filename)
	if err := os.Remove(dstPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file %s: %w", filename, err)
	}
	return nil
}

// URL returns the access URL for a stored file. Private buckets get a
// bucket-relative path without the public base.
func (ls *LocalStorage) URL(bucket, filename string) string {
	ls.mu.RLock()
	isPublic := ls.public[bucket]
	ls.mu.RUnlock()

	rel := bucket + "/" + filename
	if isPublic && ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + rel
	}
	return rel
}
