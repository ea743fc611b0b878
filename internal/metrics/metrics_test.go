// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "trips_test"))

	RecordDBQuery("INSERT", "trips_test", 5*time.Millisecond, nil)
	RecordDBQuery("INSERT", "trips_test", 5*time.Millisecond, errors.New("constraint"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "trips_test"))
	if after-before != 1 {
		t.Errorf("error counter moved by %v, want 1", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/test", "200")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("GET", "/api/v1/test", "200", 12*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("request counter moved by %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if testutil.ToFloat64(APIActiveRequests) != before+1 {
		t.Error("gauge should increase")
	}
	TrackActiveRequest(false)
	if testutil.ToFloat64(APIActiveRequests) != before {
		t.Error("gauge should return to its previous value")
	}
}

func TestRecordPhotoUpload(t *testing.T) {
	bytesBefore := testutil.ToFloat64(PhotoBytesStored)
	rejectedBefore := testutil.ToFloat64(PhotoUploads.WithLabelValues("too_large"))

	RecordPhotoUpload("stored", 2048)
	RecordPhotoUpload("too_large", 9<<20)

	if got := testutil.ToFloat64(PhotoBytesStored) - bytesBefore; got != 2048 {
		t.Errorf("bytes stored moved by %v, want 2048", got)
	}
	if got := testutil.ToFloat64(PhotoUploads.WithLabelValues("too_large")) - rejectedBefore; got != 1 {
		t.Errorf("too_large moved by %v, want 1", got)
	}
}

func TestRecordPortraitAndLLM(t *testing.T) {
	before := testutil.ToFloat64(PortraitRequests.WithLabelValues("cooling_down"))
	RecordPortraitRequest("cooling_down")
	if got := testutil.ToFloat64(PortraitRequests.WithLabelValues("cooling_down")) - before; got != 1 {
		t.Errorf("portrait counter moved by %v, want 1", got)
	}

	RecordLLMRequest("gemini", time.Second, nil)
	RecordLLMRequest("gemini", time.Second, errors.New("timeout"))
	if n := testutil.CollectAndCount(LLMRequestDuration); n < 2 {
		t.Errorf("expected success and error series, got %d", n)
	}
}
