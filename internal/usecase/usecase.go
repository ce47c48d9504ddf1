package usecase

import (
	"context"
	"io"
)

func New(repo Repository, fs FileStorageProvider) Usecase {
	return Usecase{
		repo:                repo,
		fileStorageProvider: fs,
		keygen:              NewKeyGenerator(),
	}
}

// Repository persists asset records.
type Repository interface {
	Health() map[string]string
	Close(context.Context) error

	// InsertAssets bulk-inserts records and returns them with
	// assigned ids, preserving input order. On a partial write
	// failure the inserted prefix is returned alongside the error.
	InsertAssets(context.Context, []Asset) ([]Asset, error)
	ListAssets(context.Context) ([]Asset, error)
	GetAssetByID(context.Context, string) (Asset, error)
	DeleteAssetByID(context.Context, string) error
}

// FileStorageProvider stores raw file bytes in object storage under
// derived keys. Put returns the durable retrieval URL of the object.
type FileStorageProvider interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Usecase struct {
	repo                Repository
	fileStorageProvider FileStorageProvider
	keygen              KeyGenerator
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close(ctx context.Context) error {
	return u.repo.Close(ctx)
}
