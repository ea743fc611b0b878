// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package main is the entry point for the Travel World server.

Travel World is a travel journal: users record trips and photos, tick off
visited countries on a world map, and once they have enough trips can ask
an LLM for a short "traveler portrait" of their travel style.

# Application Architecture

	RootSupervisor ("travelworld")
	├── DataSupervisor ("data-layer")
	│   ├── photo-blob-gc (BadgerDB value-log GC)
	│   └── cache-janitor:api
	├── MessagingSupervisor ("messaging-layer")
	│   └── event-router (watermill, cache invalidation)
	└── APISupervisor ("api-layer")
	    └── http-server (chi)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. DuckDB: trips, visited markers, photo metadata, portraits, profiles
 4. BadgerDB: photo bytes
 5. Portrait generator: Gemini over resty, behind a circuit breaker
 6. Event bus and router
 7. Supervisor tree and HTTP server

# Configuration

	HTTP_PORT=8080
	DUCKDB_PATH=/data/travelworld.duckdb
	PHOTO_STORE_PATH=/data/photos
	JWT_SECRET=<32+ chars>
	LLM_PROVIDER=gemini
	GEMINI_API_KEY=<key>
	PORTRAIT_COOLDOWN=72h
	LOG_LEVEL=info
	LOG_FORMAT=json

# Tokens

Authentication is delegated: the server validates HS256 bearer tokens
signed with JWT_SECRET. For local use a token can be minted with

	./travelworld issue-token user-1 --name "Ana"

which prints the token and exits.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, then the stores are closed.
*/
package main
