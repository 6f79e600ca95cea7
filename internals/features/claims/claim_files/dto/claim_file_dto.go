package dto

import (
	"io"
	"mime/multipart"
	"strings"
)

// FormField is the multipart field carrying evidence files.
const FormField = "files"

// EvidenceUpload is one incoming file, detached from the HTTP layer.
type EvidenceUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

func FromFileHeader(fh *multipart.FileHeader) EvidenceUpload {
	return EvidenceUpload{
		Filename:    strings.TrimSpace(fh.Filename),
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FromFileHeaders(fhs []*multipart.FileHeader) []EvidenceUpload {
	out := make([]EvidenceUpload, 0, len(fhs))
	for _, fh := range fhs {
		if fh == nil {
			continue
		}
		out = append(out, FromFileHeader(fh))
	}
	return out
}
