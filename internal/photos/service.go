// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package photos stores trip photo albums: bytes in a BadgerDB blob store,
// metadata rows in the database.
//
// Uploads are validated as a batch before anything is written. Each file is
// then stored as a blob first and recorded as a row second; if the row
// insert fails the blob is removed again, so a row never points at a
// missing blob and orphaned blobs are not left behind.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/metrics"
	"github.com/tomtom215/travelworld/internal/models"
)

// Upload limits.
const (
	DefaultMaxPerTrip = 20
	DefaultMaxBytes   = 5 << 20
)

var (
	ErrNoFiles          = errors.New("no files uploaded")
	ErrTooManyPhotos    = errors.New("too many photos for this trip")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedType  = errors.New("unsupported image type")
	ErrMissingPhotoBlob = errors.New("photo bytes missing from store")
)

// AllowedTypes are the accepted sniffed content types.
var AllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Store is the metadata persistence the service needs.
type Store interface {
	GetTrip(ctx context.Context, userID, id string) (*models.Trip, error)
	CountPhotos(ctx context.Context, tripID string) (int, error)
	InsertPhoto(ctx context.Context, photo *models.Photo, maxPerTrip int) error
	GetPhoto(ctx context.Context, userID, id string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, userID, id string) error
	DeleteTrip(ctx context.Context, userID, id string) error
}

// Upload is one file of a multipart batch.
type Upload struct {
	Filename string
	Reader   io.Reader
	Caption  *string
}

// Service coordinates blobs and rows.
type Service struct {
	store      Store
	blobs      BlobStore
	maxPerTrip int
	maxBytes   int64
	now        func() time.Time
}

// NewService wires a service. Non-positive limits fall back to defaults.
func NewService(store Store, blobs BlobStore, maxPerTrip int, maxBytes int64) *Service {
	if maxPerTrip <= 0 {
		maxPerTrip = DefaultMaxPerTrip
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{
		store:      store,
		blobs:      blobs,
		maxPerTrip: maxPerTrip,
		maxBytes:   maxBytes,
		now:        time.Now,
	}
}

// MaxBytes is the per-file size limit.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// MaxPerTrip is the album size limit.
func (s *Service) MaxPerTrip() int { return s.maxPerTrip }

type validated struct {
	name        string
	data        []byte
	contentType string
	caption     *string
}

// validate reads one upload, enforcing the size limit and sniffing its type.
func (s *Service) validate(u Upload) (validated, error) {
	data, err := io.ReadAll(io.LimitReader(u.Reader, s.maxBytes+1))
	if err != nil {
		return validated{}, fmt.Errorf("read %s: %w", u.Filename, err)
	}
	if int64(len(data)) > s.maxBytes {
		return validated{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, u.Filename, s.maxBytes)
	}
	ct := DetectType(data)
	if !AllowedTypes[ct] {
		return validated{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, u.Filename, ct)
	}
	return validated{name: u.Filename, data: data, contentType: ct, caption: u.Caption}, nil
}

// DetectType sniffs the content type from the leading bytes.
func DetectType(data []byte) string {
	return http.DetectContentType(data)
}

// Upload adds files to a trip's album. The whole batch is validated first;
// any invalid file rejects the batch before anything is stored. A storage
// failure part way through removes the files already stored.
func (s *Service) Upload(ctx context.Context, userID, tripID string, files []Upload) ([]models.Photo, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if _, err := s.store.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	existing, err := s.store.CountPhotos(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if existing+len(files) > s.maxPerTrip {
		metrics.RecordPhotoUpload("rejected", 0)
		return nil, fmt.Errorf("%w: %d stored, %d uploaded, limit %d", ErrTooManyPhotos, existing, len(files), s.maxPerTrip)
	}

	batch := make([]validated, 0, len(files))
	for _, f := range files {
		v, err := s.validate(f)
		if err != nil {
			metrics.RecordPhotoUpload("rejected", 0)
			return nil, err
		}
		batch = append(batch, v)
	}

	ts := s.now()
	out := make([]models.Photo, 0, len(batch))
	for i, v := range batch {
		key := StoragePath(userID, tripID, ts, i, v.name)
		if _, err := s.blobs.Put(ctx, key, v.data, v.contentType); err != nil {
			metrics.RecordPhotoUpload("error", 0)
			s.rollback(ctx, userID, out)
			return nil, fmt.Errorf("store %s: %w", v.name, err)
		}

		photo := &models.Photo{
			TripID:      tripID,
			UserID:      userID,
			StoragePath: key,
			ContentType: v.contentType,
			SizeBytes:   int64(len(v.data)),
			Caption:     v.caption,
		}
		if err := s.store.InsertPhoto(ctx, photo, s.maxPerTrip); err != nil {
			if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
				logging.Ctx(ctx).Error().Err(delErr).Str("key", key).Msg("Failed to remove blob after insert failure")
			}
			s.rollback(ctx, userID, out)
			if errors.Is(err, database.ErrPhotoLimit) {
				metrics.RecordPhotoUpload("rejected", 0)
				return nil, fmt.Errorf("%w: limit %d", ErrTooManyPhotos, s.maxPerTrip)
			}
			metrics.RecordPhotoUpload("error", 0)
			return nil, err
		}

		metrics.RecordPhotoUpload("stored", photo.SizeBytes)
		out = append(out, *photo)
	}

	logging.Ctx(ctx).Info().Str("trip_id", tripID).Int("count", len(out)).Msg("Photos uploaded")
	return out, nil
}

// rollback removes the photos already committed by a failed batch, so an
// upload either stores every file or none.
func (s *Service) rollback(ctx context.Context, userID string, committed []models.Photo) {
	ctx = context.WithoutCancel(ctx)
	for _, p := range committed {
		if err := s.store.DeletePhoto(ctx, userID, p.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			logging.Ctx(ctx).Error().Err(err).Str("photo_id", p.ID).Msg("Failed to roll back photo row")
			continue
		}
		if err := s.blobs.Delete(ctx, p.StoragePath); err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("key", p.StoragePath).Msg("Failed to roll back photo blob")
		}
	}
}

// Open returns a photo row with its bytes.
func (s *Service) Open(ctx context.Context, userID, photoID string) (*models.Photo, *Blob, error) {
	photo, err := s.store.GetPhoto(ctx, userID, photoID)
	if err != nil {
		return nil, nil, err
	}
	blob, err := s.blobs.Get(ctx, photo.StoragePath)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingPhotoBlob, photo.ID)
	}
	if err != nil {
		return nil, nil, err
	}
	return photo, blob, nil
}

// Delete removes a photo's blob, then its row.
func (s *Service) Delete(ctx context.Context, userID, photoID string) error {
	photo, err := s.store.GetPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, photo.StoragePath); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return s.store.DeletePhoto(ctx, userID, photoID)
}

// DeleteTrip removes every photo blob of the trip, then the trip and its
// photo rows. A blob that fails to delete is logged and skipped so a broken
// blob cannot make a trip undeletable.
func (s *Service) DeleteTrip(ctx context.Context, userID, tripID string) error {
	trip, err := s.store.GetTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}
	for _, p := range trip.Photos {
		if err := s.blobs.Delete(ctx, p.StoragePath); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", p.StoragePath).Msg("Failed to delete photo blob")
		}
	}
	return s.store.DeleteTrip(ctx, userID, tripID)
}
