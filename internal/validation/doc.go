// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package validation checks request bodies with go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct
metadata, so reuse matters. Request types in internal/models carry the
rules as tags:

	type TripRequest struct {
	    CountryCode string `json:"country_code" validate:"required,len=2,alpha,country"`
	    StartedAt   string `json:"started_at" validate:"required,datetime=2006-01-02"`
	    Mood        string `json:"mood" validate:"omitempty,oneof=amazing good neutral tough terrible"`
	}

Handlers turn failures into the API's VALIDATION_ERROR body:

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}
*/
package validation
