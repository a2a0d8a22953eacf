package entity

import "io"

// UploadFile is a local file about to be sent to object storage.
type UploadFile struct {
	Name        string    `validate:"required"`
	ContentType string    `validate:"required"`
	Size        int64     `validate:"gt=0"`
	Body        io.Reader `validate:"required"`
}

// PresignedUpload is a single-use write URL issued by the backend.
type PresignedUpload struct {
	PresignedURL string `json:"presignedUrl" validate:"required,url"`
	S3Key        string `json:"s3Key" validate:"required"`
}

// UploadReceipt is the backend's acknowledgement of a finished upload.
// ID is what later status and report lookups key on.
type UploadReceipt struct {
	ID             string `json:"id"`
	S3Key          string `json:"s3Key"`
	FileType       string `json:"fileType,omitempty"`
	AnalysisStatus string `json:"analysisStatus,omitempty"`
}
