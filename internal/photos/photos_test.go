// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package photos

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/models"
)

var (
	jpegBytes = append([]byte("\xff\xd8\xff\xe0"), bytes.Repeat([]byte{0x10}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 64)...)
	webpBytes = append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), bytes.Repeat([]byte{0x02}, 64)...)
	gifBytes  = append([]byte("GIF89a"), bytes.Repeat([]byte{0x03}, 64)...)
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"IMG_0001.jpg", "IMG_0001.jpg"},
		{"Ñandú en Perú.png", "Nandu_en_Peru.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\photo 1.webp`, "photo_1.webp"},
		{"東京.jpg", "jpg"},
		{"   ", "photo"},
		{"", "photo"},
		{"a!!!b###c.jpeg", "a_b_c.jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := SafeName(tt.in); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := strings.Repeat("x", 200) + ".jpg"
	if got := SafeName(long); len(got) != maxNameLen || !strings.HasSuffix(got, ".jpg") {
		t.Errorf("long name = %q (len %d)", got, len(got))
	}
}

func TestStoragePath(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1700000000123)
	got := StoragePath("u1", "t1", at, 2, "Beach Day.JPG")
	if want := "u1/t1/1700000000123_2_Beach_Day.JPG"; got != want {
		t.Errorf("StoragePath = %q, want %q", got, want)
	}
}

func TestDetectType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		allowed bool
	}{
		{"jpeg", jpegBytes, true},
		{"png", pngBytes, true},
		{"webp", webpBytes, true},
		{"gif", gifBytes, false},
		{"text", []byte("hello"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ct := DetectType(tt.data)
			if AllowedTypes[ct] != tt.allowed {
				t.Errorf("DetectType = %s, allowed = %v, want %v", ct, AllowedTypes[ct], tt.allowed)
			}
		})
	}
}

func openMemStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerStore(":memory:")
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := openMemStore(t)
	ctx := context.Background()

	meta, err := s.Put(ctx, "u1/t1/a.jpg", jpegBytes, "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if meta.Size != int64(len(jpegBytes)) || meta.ETag != ETag(jpegBytes) {
		t.Errorf("meta = %+v", meta)
	}

	blob, err := s.Get(ctx, "u1/t1/a.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(blob.Data, jpegBytes) || blob.ContentType != "image/jpeg" {
		t.Errorf("blob mismatch: %s %d bytes", blob.ContentType, len(blob.Data))
	}

	if _, err := s.Put(ctx, "u1/t2/b.png", pngBytes, "image/png"); err != nil {
		t.Fatal(err)
	}
	keys, err := s.Keys("u1/t1/")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "u1/t1/a.jpg" {
		t.Errorf("Keys = %v", keys)
	}

	if err := s.Delete(ctx, "u1/t1/a.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "u1/t1/a.jpg"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("after delete: got %v, want ErrBlobNotFound", err)
	}
	if err := s.Delete(ctx, "u1/t1/a.jpg"); err != nil {
		t.Errorf("deleting a missing blob: %v", err)
	}
	if err := s.RunValueLogGC(0.5); err != nil {
		t.Errorf("RunValueLogGC in memory: %v", err)
	}
}

func TestETagStable(t *testing.T) {
	t.Parallel()

	a, b := ETag(jpegBytes), ETag(append([]byte(nil), jpegBytes...))
	if a != b {
		t.Error("ETag must depend only on content")
	}
	if a == ETag(pngBytes) {
		t.Error("different content should give different ETags")
	}
	if !strings.HasPrefix(a, `"`) || len(a) != 34 {
		t.Errorf("ETag = %s, want quoted 32 hex chars", a)
	}
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	trips     map[string]*models.Trip
	photos    map[string]*models.Photo
	insertErr error
	// failAfter makes InsertPhoto fail with insertErr once that many
	// inserts succeeded; zero fails immediately.
	failAfter int
	seq       int
}

func newFakeStore(trips ...*models.Trip) *fakeStore {
	f := &fakeStore{trips: map[string]*models.Trip{}, photos: map[string]*models.Photo{}}
	for _, t := range trips {
		f.trips[t.ID] = t
	}
	return f
}

func (f *fakeStore) GetTrip(_ context.Context, userID, id string) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[id]
	if !ok || t.UserID != userID {
		return nil, database.ErrNotFound
	}
	cp := *t
	for _, p := range f.photos {
		if p.TripID == id {
			cp.Photos = append(cp.Photos, *p)
		}
	}
	return &cp, nil
}

func (f *fakeStore) CountPhotos(_ context.Context, tripID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.photos {
		if p.TripID == tripID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) InsertPhoto(_ context.Context, p *models.Photo, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil && f.seq >= f.failAfter {
		return f.insertErr
	}
	f.seq++
	p.ID = "p" + string(rune('0'+f.seq))
	cp := *p
	f.photos[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetPhoto(_ context.Context, userID, id string) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.UserID != userID {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) DeletePhoto(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.UserID != userID {
		return database.ErrNotFound
	}
	delete(f.photos, id)
	return nil
}

func (f *fakeStore) DeleteTrip(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[id]
	if !ok || t.UserID != userID {
		return database.ErrNotFound
	}
	for pid, p := range f.photos {
		if p.TripID == id {
			delete(f.photos, pid)
		}
	}
	delete(f.trips, id)
	return nil
}

func newTestService(t *testing.T, store Store, maxPerTrip int, maxBytes int64) (*Service, *BadgerStore) {
	t.Helper()
	blobs := openMemStore(t)
	svc := NewService(store, blobs, maxPerTrip, maxBytes)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, blobs
}

func uploads(files map[string][]byte) []Upload {
	out := make([]Upload, 0, len(files))
	for name, data := range files {
		out = append(out, Upload{Filename: name, Reader: bytes.NewReader(data)})
	}
	return out
}

func TestServiceUpload(t *testing.T) {
	t.Parallel()

	store := newFakeStore(&models.Trip{ID: "t1", UserID: "u1"})
	svc, blobs := newTestService(t, store, 20, 1024)
	ctx := context.Background()

	got, err := svc.Upload(ctx, "u1", "t1", []Upload{
		{Filename: "a.jpg", Reader: bytes.NewReader(jpegBytes)},
		{Filename: "b.png", Reader: bytes.NewReader(pngBytes)},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d photos, want 2", len(got))
	}
	if got[0].StoragePath != "u1/t1/1700000000000_0_a.jpg" || got[1].ContentType != "image/png" {
		t.Errorf("unexpected photos %+v", got)
	}

	photo, blob, err := svc.Open(ctx, "u1", got[0].ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if photo.ID != got[0].ID || !bytes.Equal(blob.Data, jpegBytes) {
		t.Error("Open returned wrong photo")
	}
	if _, _, err := svc.Open(ctx, "u2", got[0].ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("other user Open: got %v", err)
	}

	if err := svc.Delete(ctx, "u1", got[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := blobs.Get(ctx, got[0].StoragePath); !errors.Is(err, ErrBlobNotFound) {
		t.Error("blob should be gone after Delete")
	}
}

func TestServiceUploadRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    string
		files   []Upload
		wantErr error
	}{
		{"no files", "u1", nil, ErrNoFiles},
		{"other user's trip", "u2", uploads(map[string][]byte{"a.jpg": jpegBytes}), database.ErrNotFound},
		{"too large", "u1", uploads(map[string][]byte{"big.jpg": append(append([]byte(nil), jpegBytes...), make([]byte, 2048)...)}), ErrFileTooLarge},
		{"gif", "u1", uploads(map[string][]byte{"anim.gif": gifBytes}), ErrUnsupportedType},
		{"over limit", "u1", uploads(map[string][]byte{"1.jpg": jpegBytes, "2.jpg": jpegBytes, "3.jpg": jpegBytes, "4.jpg": jpegBytes}), ErrTooManyPhotos},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore(&models.Trip{ID: "t1", UserID: "u1"})
			svc, blobs := newTestService(t, store, 3, 1024)

			_, err := svc.Upload(context.Background(), tt.user, "t1", tt.files)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			keys, _ := blobs.Keys("")
			if len(keys) != 0 {
				t.Errorf("rejected batch stored blobs: %v", keys)
			}
		})
	}
}

func TestServiceUploadRemovesBlobWhenInsertFails(t *testing.T) {
	t.Parallel()

	store := newFakeStore(&models.Trip{ID: "t1", UserID: "u1"})
	store.insertErr = database.ErrPhotoLimit
	svc, blobs := newTestService(t, store, 20, 1024)

	_, err := svc.Upload(context.Background(), "u1", "t1", uploads(map[string][]byte{"a.jpg": jpegBytes}))
	if !errors.Is(err, ErrTooManyPhotos) {
		t.Fatalf("got %v, want ErrTooManyPhotos", err)
	}
	keys, _ := blobs.Keys("")
	if len(keys) != 0 {
		t.Errorf("blob left behind: %v", keys)
	}
}

func TestServiceUploadRollsBackPartialBatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore(&models.Trip{ID: "t1", UserID: "u1"})
	store.insertErr = database.ErrPhotoLimit
	store.failAfter = 2
	svc, blobs := newTestService(t, store, 20, 1024)
	ctx := context.Background()

	got, err := svc.Upload(ctx, "u1", "t1", []Upload{
		{Filename: "a.jpg", Reader: bytes.NewReader(jpegBytes)},
		{Filename: "b.png", Reader: bytes.NewReader(pngBytes)},
		{Filename: "c.webp", Reader: bytes.NewReader(webpBytes)},
	})
	if !errors.Is(err, ErrTooManyPhotos) {
		t.Fatalf("got %v, want ErrTooManyPhotos", err)
	}
	if got != nil {
		t.Errorf("failed batch returned photos: %+v", got)
	}
	if n, _ := store.CountPhotos(ctx, "t1"); n != 0 {
		t.Errorf("%d rows left after failed batch", n)
	}
	keys, _ := blobs.Keys("")
	if len(keys) != 0 {
		t.Errorf("blobs left after failed batch: %v", keys)
	}
}

func TestServiceDeleteTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore(&models.Trip{ID: "t1", UserID: "u1"})
	svc, blobs := newTestService(t, store, 20, 1024)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "u1", "t1", uploads(map[string][]byte{"a.jpg": jpegBytes, "b.webp": webpBytes})); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteTrip(ctx, "u2", "t1"); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("other user DeleteTrip: got %v", err)
	}
	if err := svc.DeleteTrip(ctx, "u1", "t1"); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	keys, _ := blobs.Keys("u1/t1/")
	if len(keys) != 0 {
		t.Errorf("blobs left after trip delete: %v", keys)
	}
	if _, err := store.GetTrip(ctx, "u1", "t1"); !errors.Is(err, database.ErrNotFound) {
		t.Error("trip should be deleted")
	}
}
