/*
Package storage abstracts binary/image storage behind the BlobStore
capability: store bytes under a key, get back a retrievable URL.
*/
package storage

import (
	"context"
	"io"
)

// ServiceConfig holds what the S3-compatible backend needs.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// PublicBaseURL is the externally reachable prefix for stored objects.
	// Empty means path-style URLs derived from the endpoint and bucket.
	PublicBaseURL string
}

// BlobStore is the opaque storage capability the handlers depend on.
type BlobStore interface {
	// Upload stores the content under key and returns its retrievable URL.
	Upload(ctx context.Context, key string, contentType string, content io.Reader) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// URL returns the retrievable URL for an already stored key.
	URL(key string) string
}

// NewBlobStore returns the S3-compatible implementation.
func NewBlobStore(cfg ServiceConfig) (BlobStore, error) {
	return newS3Store(cfg)
}
