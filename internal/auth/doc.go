// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package auth validates the bearer tokens that identify a journal's owner.

Login and registration live in the identity provider. It shares an HS256
secret with this server and mints tokens whose sub claim is the user ID.
Every /api/v1 data route is wrapped by Middleware.Authenticate, which
accepts either header form

	Authorization: Bearer <jwt>

or a cookie named token, and rejects everything else with a 401 JSON
envelope. Handlers read the owner with UserID(r.Context()); all queries
are scoped by it, so one user's trips, photos and portraits are invisible
to another.

For local development `server -issue-token <user-id>` prints a token signed
with the configured secret.
*/
package auth
