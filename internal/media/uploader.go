// Package media forwards base64 file payloads to the S3-compatible media
// store and hands back public URLs. Resource type is detected from the
// decoded bytes, not trusted from the client.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the media store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL is the public prefix uploaded objects are served from,
	// e.g. https://media.uideverse.example.
	BaseURL string
}

// Uploader stores decoded payloads in the media bucket.
type Uploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewUploader creates an Uploader and connects to the media store.
func NewUploader(cfg Config) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to media store: %w", err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
}

// EnsureBucket creates the media bucket if it does not exist yet.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("checking media bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating media bucket: %w", err)
	}
	return nil
}

// UploadBase64 decodes the payload, sniffs its content type, stores it under
// a fresh uuid key and returns the public URL.
func (u *Uploader) UploadBase64(ctx context.Context, payload, filename string) (string, error) {
	data, contentType, err := decodePayload(payload)
	if err != nil {
		return "", err
	}

	key := uuid.NewString()
	if ext := path.Ext(filename); ext != "" {
		key += ext
	}

	_, err = u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storing media object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.baseURL, u.bucket, key), nil
}

// decodePayload strips an optional data-URI prefix, base64-decodes the
// payload and sniffs the content type from the decoded bytes.
func decodePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return nil, "", fmt.Errorf("data URI payload is not base64 encoded")
		}
		payload = payload[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty file payload")
	}

	return data, http.DetectContentType(data), nil
}
