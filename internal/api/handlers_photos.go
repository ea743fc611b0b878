// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/models"
	"github.com/tomtom215/travelworld/internal/photos"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// UploadPhotos adds the multipart "files" parts to a trip's album. Optional
// "captions" parts are matched to files by position.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID := chi.URLParam(r, "id")

	// whole-request bound: a full album plus form overhead
	limit := int64(h.photos.MaxPerTrip())*h.photos.MaxBytes() + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Upload too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Expected multipart/form-data with files", nil)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to remove multipart temp files")
		}
	}()

	headers := r.MultipartForm.File["files"]
	captions := r.MultipartForm.Value["captions"]

	uploads := make([]photos.Upload, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Unreadable file "+sanitizeLogValue(fh.Filename), err)
			return
		}
		defer closeFile(f)

		u := photos.Upload{Filename: fh.Filename, Reader: f}
		if i < len(captions) {
			if c := strings.TrimSpace(captions[i]); c != "" {
				u.Caption = &c
			}
		}
		uploads = append(uploads, u)
	}

	stored, err := h.photos.Upload(r.Context(), uid, tripID, uploads)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicTripsChanged, eventprocessor.ActionPhotos, uid).WithTrip(tripID, ""))

	respondData(w, http.StatusCreated, stored, start, false)
}

func closeFile(f multipart.File) {
	if err := f.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close uploaded file")
	}
}

// GetPhoto streams a photo's bytes to its owner. The blob digest is served
// as a strong ETag.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	photo, blob, err := h.photos.Open(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("ETag", blob.ETag)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if etagMatches(r.Header.Values("If-None-Match"), blob.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	ct := blob.ContentType
	if ct == "" {
		ct = photo.ContentType
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob.Data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Photo write interrupted")
	}
}

// etagMatches applies If-None-Match's weak comparison: "*" matches any
// representation and list members may carry a W/ prefix.
func etagMatches(headers []string, etag string) bool {
	for _, h := range headers {
		for _, candidate := range strings.Split(h, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" {
				return true
			}
			if candidate != "" && strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
				return true
			}
		}
	}
	return false
}

// UpdatePhotoCaption sets or clears a photo caption.
func (h *Handler) UpdatePhotoCaption(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.PhotoCaptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	var caption *string
	if c := strings.TrimSpace(req.Caption); c != "" {
		caption = &c
	}

	photo, err := h.db.UpdatePhotoCaption(r.Context(), uid, chi.URLParam(r, "id"), caption)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, photo, start, false)
}

// DeletePhoto removes the blob, then the row.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.photos.Delete(r.Context(), uid, id); err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicTripsChanged, eventprocessor.ActionPhotos, uid))
	logging.Ctx(r.Context()).Info().Str("photo_id", id).Msg("Photo deleted")

	w.WriteHeader(http.StatusNoContent)
}
