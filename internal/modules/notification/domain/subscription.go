package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionKeys is the browser-issued key pair addressing one device.
// Both keys are required; a subscription without them cannot be encrypted to.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription is one registered browser push endpoint for a user.
// (user_id, endpoint) is unique: re-subscribing with the same endpoint
// updates the stored keys in place.
type PushSubscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	UserAgent *string   `json:"user_agent,omitempty" db:"user_agent"`
	DeviceID  *string   `json:"device_id,omitempty" db:"device_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (s *PushSubscription) Keys() SubscriptionKeys {
	return SubscriptionKeys{P256dh: s.P256dh, Auth: s.Auth}
}
