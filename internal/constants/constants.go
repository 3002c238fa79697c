package constants

import "time"

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// TokenValidity is how long an issued session token stays valid.
	TokenValidity = 7 * 24 * time.Hour

	// Pagination bounds for task listing.
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 50

	// Context keys set by the auth middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)
