// Package storage is the object-storage collaborator. The API hands clients
// a time-limited PUT URL, the client uploads directly to S3, and the
// lifecycle core HEAD-checks the object before recording any metadata.
package storage

import (
	"fmt"
	"math/rand"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/edithub/edithub-api/internal/config"
)

// UploadURLTTL is how long an issued PUT URL stays valid.
const UploadURLTTL = 15 * time.Minute

type Client struct {
	s3Client *s3.S3
	bucket   string
	region   string
}

func NewClient(cfg config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
	}
	if cfg.AWSAccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3Bucket,
		region:   cfg.AWSRegion,
	}, nil
}

func (c *Client) Bucket() string { return c.bucket }
func (c *Client) Region() string { return c.region }

// IssueUploadURL presigns a PUT for key, valid for UploadURLTTL.
func (c *Client) IssueUploadURL(key, contentType string) (string, error) {
	req, _ := c.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	uploadURL, err := req.Presign(UploadURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload URL: %w", err)
	}
	return uploadURL, nil
}

// ObjectExists HEAD-checks the key so a metadata row is never committed for
// an upload that was reported but never written.
func (c *Client) ObjectExists(key string) (bool, error) {
	_, err := c.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case "NotFound", s3.ErrCodeNoSuchKey:
				return false, nil
			}
		}
		return false, fmt.Errorf("failed to check object %q: %w", key, err)
	}
	return true, nil
}

// PublicURL is the deterministic GET URL for a stored key.
func (c *Client) PublicURL(key string) string {
	return PublicURL(key, c.bucket, c.region)
}

func PublicURL(key, bucket, region string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// ParseObjectURL inverts PublicURL, recovering key, bucket and region.
func ParseObjectURL(objectURL string) (key, bucket, region string, err error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid object URL: %w", err)
	}

	host := u.Host
	suffix := ".amazonaws.com"
	if !strings.HasSuffix(host, suffix) {
		return "", "", "", fmt.Errorf("not an S3 object URL: %s", objectURL)
	}

	// {bucket}.s3.{region}.amazonaws.com
	parts := strings.Split(strings.TrimSuffix(host, suffix), ".s3.")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("not an S3 object URL: %s", objectURL)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", "", fmt.Errorf("object URL has no key: %s", objectURL)
	}

	return key, parts[0], parts[1], nil
}

const keyRandomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// BuildKey produces collision-resistant object keys of the form
// {basename}-{timestamp}-{random}.{ext}.
func BuildKey(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = sanitizeBase(base)

	b := make([]byte, 8)
	for i := range b {
		b[i] = keyRandomAlphabet[rand.Intn(len(keyRandomAlphabet))]
	}

	key := fmt.Sprintf("%s-%d-%s", base, time.Now().UnixNano(), string(b))
	if ext != "" {
		key += "." + strings.ToLower(ext)
	}
	return key
}

func sanitizeBase(base string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "file"
	}
	return sb.String()
}
