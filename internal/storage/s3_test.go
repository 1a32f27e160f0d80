package storage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		bucket string
		region string
	}{
		{"simple", "report-1700000000-abcd1234.pdf", "edithub-documents", "us-east-1"},
		{"nested key", "drafts/chapter-1700000000-xyz.docx", "my-bucket", "eu-west-2"},
		{"no extension", "file-1700000000-q1w2e3r4", "b", "ap-southeast-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := PublicURL(tt.key, tt.bucket, tt.region)

			key, bucket, region, err := ParseObjectURL(url)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.region, region)
		})
	}
}

func TestParseObjectURLRejectsNonS3(t *testing.T) {
	tests := []string{
		"https://example.com/some/key.pdf",
		"https://bucket.s3.us-east-1.amazonaws.com/",
		"not a url at all ://",
		"https://s3.amazonaws.com/key",
	}

	for _, raw := range tests {
		_, _, _, err := ParseObjectURL(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}

func TestBuildKey(t *testing.T) {
	key := BuildKey("My Draft (final).PDF")

	assert.True(t, strings.HasSuffix(key, ".pdf"), "extension should be lowercased: %s", key)

	// {basename}-{timestamp}-{random}.{ext}
	pattern := regexp.MustCompile(`^[a-z0-9_\-]+-\d+-[a-z0-9]{8}\.pdf$`)
	assert.Regexp(t, pattern, key)
}

func TestBuildKeyUniqueEnough(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		k := BuildKey("draft.docx")
		assert.False(t, seen[k], "duplicate key generated: %s", k)
		seen[k] = true
	}
}

func TestBuildKeyEmptyBasename(t *testing.T) {
	key := BuildKey(".gitignore")
	assert.NotEmpty(t, key)
	assert.True(t, strings.HasSuffix(key, ".gitignore"))
}
