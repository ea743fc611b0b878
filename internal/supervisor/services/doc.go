// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package services adapts server components to suture.Service.

HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
context-aware Serve with a bounded shutdown.

BlobGCService runs BadgerDB value-log GC for the photo store on an
interval. It logs failures and keeps ticking rather than crashing, since a
skipped GC pass only delays space reclamation.

Components that already implement Serve(ctx) error and String (the API
cache janitor and the event router) are added to the tree directly.
*/
package services
