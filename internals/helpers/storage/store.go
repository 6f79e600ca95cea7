// Package storage puts evidence files into object storage. Two drivers:
// S3 (any S3-compatible endpoint) and Aliyun OSS.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const (
	DriverS3  = "s3"
	DriverOSS = "oss"

	EvidencePrefix = "evidence"
)

// ObjectStore is what the claim file service needs from a bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Config struct {
	Driver        string
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	// PublicBase overrides the URL prefix returned by PublicURL.
	PublicBase string
}

// New builds the driver named by cfg.Driver (default s3).
func New(ctx context.Context, cfg Config) (ObjectStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverS3:
		return NewS3Store(ctx, cfg)
	case DriverOSS:
		return NewOSSStore(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

/* =======================================================================
   Key & URL utils
======================================================================= */

// EvidenceKey: evidence/{yyyyMM}/{base}_{unixMillis}_{rand6}{.ext}
func EvidenceKey(now time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s_%d_%s%s",
		EvidencePrefix,
		now.Format("200601"),
		Slugify(base, maxSlugLen),
		now.UnixMilli(),
		randHex(3),
		ext,
	)
}

func joinURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
