package filestorage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinIOStorage(bucket, endpoint, accessKeyID, secretAccessKey string, useSSL bool) *MinIOStorage {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		panic(err)
	}
	return &MinIOStorage{
		client: m,
		bucket: bucket,
	}
}

type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// Put writes the object and returns its public retrieval URL.
func (f *MinIOStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := f.client.PutObject(ctx, f.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", f.client.EndpointURL(), f.bucket, key), nil
}

// Delete removes the object. The backend reports success for keys
// that do not exist, so callers see delete as idempotent.
func (f *MinIOStorage) Delete(ctx context.Context, key string) error {
	return f.client.RemoveObject(ctx, f.bucket, key, minio.RemoveObjectOptions{})
}
