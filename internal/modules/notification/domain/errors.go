package domain

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSubscriptionNotFound = errors.New("push subscription not found")

	// ErrEndpointGone is reported by the push gateway when an endpoint no
	// longer exists. The owning subscription is pruned, not retried.
	ErrEndpointGone = errors.New("push endpoint gone")

	// ErrSMSRateLimited is the gateway's sending-rate-exceeded signal.
	// Logged as a warning rather than an error.
	ErrSMSRateLimited = errors.New("sms sending rate exceeded")
)
