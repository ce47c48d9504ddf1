package usecase

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// Asset is one stored file and its metadata record.
type Asset struct {
	ID         string
	Filename   string
	FileURL    string
	UploadedAt time.Time
}

// File is one incoming upload: raw bytes plus the client-declared
// MIME type and original filename.
type File struct {
	Name string
	MIME string
	Data []byte
}

// acceptedTypes keys both filename extensions and MIME subtypes.
var acceptedTypes = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
	"tiff": {},
	"tif":  {},
	"bmp":  {},
	"pdf":  {},
	"ico":  {},
}

const msgOnlyImages = "Only image files (jpg, jpeg, png, gif) are allowed!"

// UploadAssets validates a batch of files, writes each to object
// storage and persists one record per file in a single bulk insert.
// Validation rejects the whole batch before any write. Objects
// written before a later failure are not rolled back; the resulting
// orphan window is accepted behavior.
func (u Usecase) UploadAssets(ctx context.Context, files []File) ([]Asset, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Msg: "no files in batch"}
	}
	for _, f := range files {
		if !accepted(f) {
			return nil, &ValidationError{Msg: msgOnlyImages}
		}
	}

	records := make([]Asset, 0, len(files))
	for _, f := range files {
		key := u.keygen.Key(f.Name)
		url, err := u.fileStorageProvider.Put(ctx,
			key, bytes.NewReader(f.Data), int64(len(f.Data)), contentType(f))
		if err != nil {
			return nil, &StorageWriteError{Key: key, Err: err}
		}
		records = append(records, Asset{
			Filename: StripUniqueSuffix(f.Name),
			FileURL:  url,
		})
	}

	saved, err := u.repo.InsertAssets(ctx, records)
	if err != nil {
		// saved may hold a partially inserted prefix; return it so
		// the caller can report how far the batch got.
		return saved, &PersistenceError{Op: "insert assets", Err: err}
	}
	return saved, nil
}

func (u Usecase) ListAssets(ctx context.Context) ([]Asset, error) {
	assets, err := u.repo.ListAssets(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list assets", Err: err}
	}
	return assets, nil
}

// DeleteAsset removes the stored object and then its record, in that
// order. The storage key is the last path segment of the record's
// FileURL. A storage failure leaves the record in place so the asset
// stays listed and the delete can be retried.
func (u Usecase) DeleteAsset(ctx context.Context, id string) error {
	asset, err := u.repo.GetAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &PersistenceError{Op: "get asset", Err: err}
	}

	key := asset.FileURL[strings.LastIndex(asset.FileURL, "/")+1:]
	if err := u.fileStorageProvider.Delete(ctx, key); err != nil {
		return &StorageDeleteError{Key: key, Err: err}
	}

	if err := u.repo.DeleteAssetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &PersistenceError{Op: "delete asset", Err: err}
	}
	return nil
}

// accepted passes a file whose declared MIME subtype or filename
// extension is in the accepted set.
func accepted(f File) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	if _, ok := acceptedTypes[ext]; ok {
		return true
	}
	sub := strings.ToLower(f.MIME)
	if i := strings.Index(sub, "/"); i >= 0 {
		sub = sub[i+1:]
	}
	_, ok := acceptedTypes[sub]
	return ok
}

// contentType resolves the stored content type from the filename
// extension, sniffing the leading bytes when the extension is
// unknown.
func contentType(f File) string {
	if ct := mime.TypeByExtension(filepath.Ext(f.Name)); ct != "" {
		return ct
	}
	return http.DetectContentType(f.Data)
}
