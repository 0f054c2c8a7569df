package platform

import "errors"

var (
	// ErrChannelNotRegistered is returned when native delivers an event for
	// a channel nobody created.
	ErrChannelNotRegistered = errors.New("platform: channel not registered")

	// ErrDispatchUnavailable is returned by Dispatch before the host has
	// registered a UI-thread dispatcher.
	ErrDispatchUnavailable = errors.New("platform: no UI dispatcher registered")

	// ErrNilCallback is returned by Dispatch for a nil callback.
	ErrNilCallback = errors.New("platform: nil dispatch callback")
)
