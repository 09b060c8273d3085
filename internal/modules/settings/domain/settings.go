package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSettingsNotFound = errors.New("user settings not found")

// UserSettings is the per-user settings aggregate. Notification channel
// toggles live here rather than in their own table; contact details are
// what the delivery channels resolve recipients against.
type UserSettings struct {
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	Email              string    `json:"email" db:"email"`
	Phone              string    `json:"phone" db:"phone"`
	EmailNotifications bool      `json:"email_notifications" db:"email_notifications"`
	SMSNotifications   bool      `json:"sms_notifications" db:"sms_notifications"`
	PushNotifications  bool      `json:"push_notifications" db:"push_notifications"`
	InAppNotifications bool      `json:"in_app_notifications" db:"in_app_notifications"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// NewDefaults returns the aggregate a user starts with: email and in-app
// on, SMS and push opt-in.
func NewDefaults(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		SMSNotifications:   false,
		PushNotifications:  false,
		InAppNotifications: true,
	}
}
