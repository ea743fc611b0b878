// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package supervisor provides process supervision for the Travel World server
using suture v4.

# Overview

Long-running services are grouped into three layers so a failure in one
restarts only its own layer:

	RootSupervisor ("travelworld")
	├── DataSupervisor ("data-layer")
	│   ├── BlobGCService (photo store value-log GC)
	│   └── cache.Cache (expired-entry janitor)
	├── MessagingSupervisor ("messaging-layer")
	│   └── eventprocessor.Router (cache invalidation consumers)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

If the event router is restarting, API handlers still invalidate caches
directly, so reads stay consistent.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewBlobGCService(blobs, 10*time.Minute, 0.5))
	tree.AddDataService(apiCache)
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

Each supervisor counts failures with exponential decay (FailureDecay
seconds). Past FailureThreshold it waits FailureBackoff before the next
restart. A service that returns nil is not restarted; one that returns an
error is.

# What Is NOT Supervised

DuckDB and BadgerDB are embedded libraries opened once in main and closed
after the tree stops.
*/
package supervisor
