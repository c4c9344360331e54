package dto

// FileUploadResponse represents the result of a successful upload
type FileUploadResponse struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Bucket   string `json:"bucket"`
}

// FileURLResponse carries the access URL of a stored file
type FileURLResponse struct {
	URL string `json:"url"`
}
