package service

import (
	"context"
	"io"
)

// DocumentUpload is a single file submitted for verification.
type DocumentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// DocumentStorage stores verification documents and returns their public location.
type DocumentStorage interface {
	Upload(ctx context.Context, upload *DocumentUpload) (url string, err error)
}
