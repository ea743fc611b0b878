// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package eventprocessor carries journal change events over an in-process
watermill pub/sub.

API handlers publish a ChangeEvent after every write that affects the
visited set: trip create/update/delete on trips.changed, mark/unmark on
visits.changed. The Router, supervised in the messaging layer, delivers
them to CacheInvalidationHandler, which drops the user's cached derived
views.

	bus := eventprocessor.NewBus(nil)
	router := eventprocessor.NewRouter(nil, bus.Subscriber(), nil)
	eventprocessor.NewCacheInvalidationHandler(dashCache).Register(router)
	tree.AddMessagingService(router)

	_ = bus.Publish(ctx, eventprocessor.NewChangeEvent(
	    eventprocessor.TopicTripsChanged, eventprocessor.ActionCreated, userID).
	    WithTrip(trip.ID, trip.CountryCode))
*/
package eventprocessor
