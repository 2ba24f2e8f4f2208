// Package services defines the business logic of the chat pipeline. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrMissingTenantID is returned when a chat request carries no tenant id.
	ErrMissingTenantID = errors.New("missing tenant_id")

	// ErrMissingMessage is returned when a chat request carries no message.
	ErrMissingMessage = errors.New("missing message")
)
