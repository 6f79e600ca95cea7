package storage

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceKeyFormat(t *testing.T) {
	now := time.Date(2026, 7, 9, 8, 0, 0, 0, time.UTC)
	key := EvidenceKey(now, "Front Bumper_01.JPG")

	pattern := regexp.MustCompile(`^evidence/202607/front-bumper-01_\d+_[0-9a-f]{6}\.jpg$`)
	assert.Regexp(t, pattern, key)
	assert.Contains(t, key, "_1783584000000_")
}

func TestEvidenceKeyFallbackBase(t *testing.T) {
	key := EvidenceKey(time.Now(), "../../.pdf")
	assert.True(t, strings.HasPrefix(key, "evidence/"))
	assert.NotContains(t, key, "..")
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "ftp", Bucket: "b"})
	assert.Error(t, err)
	_, err = New(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err)
}

func TestOSSPublicURL(t *testing.T) {
	s := &OSSStore{endpoint: "https://oss-ap-southeast-1.aliyuncs.com", bucketName: "claims"}
	assert.Equal(t, "https://claims.oss-ap-southeast-1.aliyuncs.com/evidence/a.pdf", s.PublicURL("evidence/a.pdf"))

	s.publicBase = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/evidence/a.pdf", s.PublicURL("evidence/a.pdf"))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "k", strings.NewReader("abc"), 3, "application/pdf"))

	b, ct, ok := m.Object("k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(b))
	assert.Equal(t, "application/pdf", ct)

	require.NoError(t, m.Delete(ctx, "k"))
	assert.Error(t, m.Delete(ctx, "k"))
	assert.Zero(t, m.Len())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "cafe-creme-2", Slugify("  Café  Crème__2 ", 0))
	assert.Equal(t, "file", Slugify("ยางหน้า", 0))
	assert.Equal(t, "abc", Slugify("abc---def", 4))
}
