package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yukikurage/knowledge-share-api/internal/logging"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioStore keeps uploads in a MinIO or other S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the endpoint and creates the bucket when missing.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
		logging.Info().Str("bucket", opts.Bucket).Msg("created upload bucket")
	}

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

func (s *MinioStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	clean, err := CleanName(name)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = contentTypeFor(clean)
	}

	_, err = s.client.PutObject(ctx, s.bucket, clean, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", clean, err)
	}
	return nil
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, Object, error) {
	clean, err := CleanName(name)
	if err != nil {
		return nil, Object{}, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, clean, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, fmt.Errorf("failed to open %s: %w", clean, err)
	}

	// GetObject is lazy; Stat surfaces a missing key.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, Object{}, ErrNotFound
		}
		return nil, Object{}, fmt.Errorf("failed to stat %s: %w", clean, err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = contentTypeFor(clean)
	}
	return obj, Object{Name: clean, Size: info.Size, ContentType: contentType}, nil
}
