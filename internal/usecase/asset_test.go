package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects    map[string][]byte
	putKeys    []string
	deleted    []string
	calls      int
	failAtCall int // 1-based Put call that fails; 0 never fails
	delErr     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	f.calls++
	if f.failAtCall != 0 && f.calls == f.failAtCall {
		return "", errors.New("backend unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	f.putKeys = append(f.putKeys, key)
	return "https://bucket.s3.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, key)
	return nil
}

type fakeRepo struct {
	records     []Asset
	nextID      int
	insertErr   error
	insertErrAt int // records inserted before insertErr surfaces
	listErr     error
	deleteErr   error
}

func (f *fakeRepo) Health() map[string]string {
	return map[string]string{"status": "up"}
}

func (f *fakeRepo) Close(context.Context) error {
	return nil
}

func (f *fakeRepo) InsertAssets(_ context.Context, assets []Asset) ([]Asset, error) {
	n := len(assets)
	if f.insertErr != nil {
		n = f.insertErrAt
	}
	now := time.Now()
	saved := make([]Asset, 0, n)
	for _, a := range assets[:n] {
		f.nextID++
		a.ID = fmt.Sprintf("%024d", f.nextID)
		a.UploadedAt = now
		f.records = append(f.records, a)
		saved = append(saved, a)
	}
	return saved, f.insertErr
}

func (f *fakeRepo) ListAssets(context.Context) ([]Asset, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.records), nil
}

func (f *fakeRepo) GetAssetByID(_ context.Context, id string) (Asset, error) {
	for _, a := range f.records {
		if a.ID == id {
			return a, nil
		}
	}
	return Asset{}, ErrNotFound
}

func (f *fakeRepo) DeleteAssetByID(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, a := range f.records {
		if a.ID == id {
			f.records = slices.Delete(f.records, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

func newTestUsecase(repo *fakeRepo, fs *fakeStorage) Usecase {
	seq := 100000
	return Usecase{
		repo:                repo,
		fileStorageProvider: fs,
		keygen: KeyGenerator{
			now:    func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) },
			random: func() int { seq++; return seq },
		},
	}
}

func TestUploadAssets_SavesBatch(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	files := []File{
		{Name: "photo-abc-123.jpg", MIME: "image/jpeg", Data: []byte("jpegdata")},
		{Name: "report-v2-xyz-456.pdf", MIME: "application/pdf", Data: []byte("pdfdata")},
	}

	saved, err := u.UploadAssets(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, saved, len(files))

	assert.Equal(t, "photo", saved[0].Filename)
	assert.Equal(t, "report-v2", saved[1].Filename)

	for i, a := range saved {
		assert.NotEmpty(t, a.ID)
		assert.False(t, a.UploadedAt.IsZero())
		assert.True(t, strings.HasSuffix(a.FileURL, fs.putKeys[i]),
			"FileURL %q should end in stored key %q", a.FileURL, fs.putKeys[i])
	}

	assert.Regexp(t, `^photo-20250309\d{6}$`, fs.putKeys[0])
	assert.Len(t, fs.objects, 2)
}

func TestUploadAssets_RejectsBatchOnInvalidFile(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	files := []File{
		{Name: "photo-abc-123.jpg", MIME: "image/jpeg", Data: []byte("ok")},
		{Name: "doc.txt", MIME: "text/plain", Data: []byte("nope")},
	}

	_, err := u.UploadAssets(context.Background(), files)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, msgOnlyImages, ve.Error())
	assert.Zero(t, fs.calls, "no object may be written for a rejected batch")
	assert.Empty(t, repo.records)
}

func TestUploadAssets_EmptyBatch(t *testing.T) {
	u := newTestUsecase(&fakeRepo{}, newFakeStorage())

	_, err := u.UploadAssets(context.Background(), nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUploadAssets_AcceptsByMIMEOrExtension(t *testing.T) {
	tests := []struct {
		name string
		file File
		ok   bool
	}{
		{
			name: "mime only",
			file: File{Name: "scan.dat", MIME: "image/png"},
			ok:   true,
		},
		{
			name: "extension only",
			file: File{Name: "photo-a-b.jpg", MIME: "application/octet-stream"},
			ok:   true,
		},
		{
			name: "extension case insensitive",
			file: File{Name: "PHOTO-A-B.PNG", MIME: "application/octet-stream"},
			ok:   true,
		},
		{
			name: "both fail",
			file: File{Name: "notes.txt", MIME: "text/plain"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, accepted(tt.file))
		})
	}
}

func TestUploadAssets_PutFailureFailsBatch(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	fs.failAtCall = 2
	u := newTestUsecase(repo, fs)

	files := []File{
		{Name: "a-x-1.jpg", MIME: "image/jpeg", Data: []byte("1")},
		{Name: "b-x-2.jpg", MIME: "image/jpeg", Data: []byte("2")},
		{Name: "c-x-3.jpg", MIME: "image/jpeg", Data: []byte("3")},
	}

	saved, err := u.UploadAssets(context.Background(), files)

	var swe *StorageWriteError
	require.ErrorAs(t, err, &swe)
	assert.Empty(t, saved)
	assert.Empty(t, repo.records, "no records persisted when a write fails")
	// The first object stays behind: the accepted orphan window.
	assert.Len(t, fs.objects, 1)
}

func TestUploadAssets_InsertFailureSurfacesPartial(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("bulk write aborted"), insertErrAt: 1}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	files := []File{
		{Name: "a-x-1.jpg", MIME: "image/jpeg", Data: []byte("1")},
		{Name: "b-x-2.jpg", MIME: "image/jpeg", Data: []byte("2")},
	}

	saved, err := u.UploadAssets(context.Background(), files)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	// The inserted prefix comes back with the error; both objects
	// remain in storage, one of them now an orphan.
	assert.Len(t, saved, 1)
	assert.Len(t, fs.objects, 2)
}

func TestDeleteAsset(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	saved, err := u.UploadAssets(context.Background(), []File{
		{Name: "photo-abc-123.jpg", MIME: "image/jpeg", Data: []byte("jpegdata")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	require.NoError(t, u.DeleteAsset(context.Background(), saved[0].ID))

	// Object key derives from the record URL's last path segment.
	require.Len(t, fs.deleted, 1)
	assert.Equal(t, fs.putKeys[0], fs.deleted[0])
	assert.Empty(t, fs.objects)

	list, err := u.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteAsset_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	err := u.DeleteAsset(context.Background(), "000000000000000000000099")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, fs.deleted, "a missed lookup must not touch storage")
}

func TestDeleteAsset_StorageFailureKeepsRecord(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	saved, err := u.UploadAssets(context.Background(), []File{
		{Name: "photo-abc-123.jpg", MIME: "image/jpeg", Data: []byte("jpegdata")},
	})
	require.NoError(t, err)

	fs.delErr = errors.New("backend unavailable")
	err = u.DeleteAsset(context.Background(), saved[0].ID)

	var sde *StorageDeleteError
	require.ErrorAs(t, err, &sde)

	// Fail closed: the record survives so the delete can be retried.
	list, err := u.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListAssets_RoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	fs := newFakeStorage()
	u := newTestUsecase(repo, fs)

	saved, err := u.UploadAssets(context.Background(), []File{
		{Name: "photo-abc-123.jpg", MIME: "image/jpeg", Data: []byte("jpegdata")},
	})
	require.NoError(t, err)

	list, err := u.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, list)
}
