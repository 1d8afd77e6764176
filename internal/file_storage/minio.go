package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/SeakMengs/DocSign/internal/constant"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

// MinioStore keeps documents as objects "pdfs/<id>.pdf" of one bucket.
type MinioStore struct {
	s3     *minio.Client
	bucket string
}

func NewMinioStore(ctx context.Context, s3 *minio.Client, bucket string) (*MinioStore, error) {
	if err := createBucketIfNotExists(ctx, s3, bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &MinioStore{s3: s3, bucket: bucket}, nil
}

func objectName(id string) string {
	return "pdfs/" + id + ".pdf"
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func (s *MinioStore) Put(ctx context.Context, id string, r io.Reader, size int64) error {
	if err := checkID(id); err != nil {
		return err
	}

	_, err := s.s3.PutObject(ctx, s.bucket, objectName(id), r, size, minio.PutObjectOptions{
		ContentType: constant.PDF_CONTENT_TYPE,
	})
	if err != nil {
		return fmt.Errorf("failed to upload document %s: %w", id, err)
	}

	return nil
}

func (s *MinioStore) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	// GetObject is lazy, stat first so a missing object is reported here
	if _, err := s.s3.StatObject(ctx, s.bucket, objectName(id), minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat document %s: %w", id, err)
	}

	object, err := s.s3.GetObject(ctx, s.bucket, objectName(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}

	return object, nil
}

func (s *MinioStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	_, err := s.s3.StatObject(ctx, s.bucket, objectName(id), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
