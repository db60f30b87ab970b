package port

import (
	"context"
	"io"
)

// UploadInput describes one rendered report to archive. Size is the exact
// byte length of Body.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput locates an archived report.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage is the report archive. Exports are written once and handed
// out through time-limited download links; nothing reads them back.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
