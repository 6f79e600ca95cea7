package constants

import (
	"path/filepath"
	"strings"
)

const (
	MaxEvidenceFileSize     = 10 * 1024 * 1024
	MaxEvidenceFilesPerCall = 5
)

// Evidence MIME types accepted on upload.
var AllowedEvidenceTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// DetectContentTypeFromExt maps a filename extension to its MIME type,
// "application/octet-stream" when the extension is unknown.
func DetectContentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ResolveEvidenceType picks the allowed MIME type for an upload: the one
// implied by the extension first, then the declared one. ok is false when
// neither is allowed.
func ResolveEvidenceType(filename, declared string) (string, bool) {
	if ct := DetectContentTypeFromExt(filename); isAllowedEvidence(ct) {
		return ct, true
	}
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if isAllowedEvidence(declared) {
		return declared, true
	}
	return "", false
}

func isAllowedEvidence(ct string) bool {
	_, ok := AllowedEvidenceTypes[ct]
	return ok
}
