package filestorage

// StoredFile describes where an uploaded file ended up.
type StoredFile struct {
	Bucket string // Bucket the file was written to
	Name   string // Filename inside the bucket
	Path   string // Bucket-relative path, e.g. "avatars/abc.png"
	URL    string // Public URL when the bucket is public, signed path otherwise
	Size   int64  // Size in bytes
}

// Storage is the bucket-oriented file store. Buckets are created up front at
// boot; filenames may carry a path prefix, so each bucket can be keyed by
// owner. Public buckets serve files by plain URL.
type Storage interface {
	// EnsureBucket creates the bucket if it does not exist yet
	EnsureBucket(name string, public bool) error

	// Save writes the content under bucket/filename and returns file info
	Save(bucket, filename string, content []byte) (*StoredFile, error)

	// Delete removes a file from a bucket. Missing files are not an error.
	Delete(bucket, filename string) error

	// URL returns the access URL for a stored file
	URL(bucket, filename string) string
}
