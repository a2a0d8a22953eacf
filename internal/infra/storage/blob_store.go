// Package storage provides the key-value stores behind local preferences.
package storage

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"dashcam/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const keyPrefix = "prefs/"

// blobStore keeps one blob object per key
type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewBlobStore opens a gocloud bucket URL (file:///dir, mem://) as a KeyValueStore
func NewBlobStore(ctx context.Context, bucketURL string, logger *slog.Logger) (repository.KeyValueStore, error) {
	if err := ensureFileBucketDir(bucketURL); err != nil {
		return nil, err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	logger.Debug("Preference store opened", slog.String("url", bucketURL))

	return &blobStore{
		bucket: bucket,
		logger: logger,
	}, nil
}

// NewBucketStore wraps an already opened bucket
func NewBucketStore(bucket *blob.Bucket, logger *slog.Logger) repository.KeyValueStore {
	return &blobStore{
		bucket: bucket,
		logger: logger,
	}
}

// Get returns the value for key or repository.ErrKeyNotFound
func (s *blobStore) Get(ctx context.Context, key string) (string, error) {
	data, err := s.bucket.ReadAll(ctx, objectKey(key))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrapf(err, "read preference %s", key)
	}

	return string(data), nil
}

// Set stores value under key
func (s *blobStore) Set(ctx context.Context, key, value string) error {
	opts := &blob.WriterOptions{ContentType: "text/plain; charset=utf-8"}
	if err := s.bucket.WriteAll(ctx, objectKey(key), []byte(value), opts); err != nil {
		return errors.Wrapf(err, "write preference %s", key)
	}

	return nil
}

// Delete removes key; a missing key is not an error
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, objectKey(key)); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete preference %s", key)
	}

	return nil
}

// Close releases the bucket
func (s *blobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func objectKey(key string) string {
	return keyPrefix + key
}

// ensureFileBucketDir creates the directory behind a file:// URL, which fileblob requires to exist
func ensureFileBucketDir(bucketURL string) error {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return errors.Wrapf(err, "parse bucket url %s", bucketURL)
	}
	if u.Scheme != "file" {
		return nil
	}

	dir := filepath.FromSlash(u.Path)
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		dir = filepath.Join(u.Host, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "create preference dir %s", dir)
	}

	return nil
}
