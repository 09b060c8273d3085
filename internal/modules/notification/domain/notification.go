package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBilling NotificationType = "billing"
	NotificationTypeAccess  NotificationType = "access"
	NotificationTypeSession NotificationType = "session"
	NotificationTypeSystem  NotificationType = "system"
	NotificationTypeInfo    NotificationType = "info"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Metadata is an arbitrary JSON object stored alongside a notification.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata source type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// Notification is the durable record of a platform event addressed to a
// recipient. The record is always persisted; delivery over any channel is
// best-effort on top of it.
type Notification struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Title        string           `json:"title" db:"title"`
	Message      string           `json:"message" db:"message"`
	Type         NotificationType `json:"type" db:"type"`
	Priority     Priority         `json:"priority" db:"priority"`
	EntityID     *uuid.UUID       `json:"entity_id" db:"entity_id"`
	EntityType   string           `json:"entity_type" db:"entity_type"`
	Metadata     Metadata         `json:"metadata" db:"metadata"`
	IsRead       bool             `json:"is_read" db:"is_read"`
	EmailSubject *string          `json:"email_subject,omitempty" db:"email_subject"`
	HTMLContent  *string          `json:"html_content,omitempty" db:"html_content"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// DispatchResult is the per-channel outcome of one dispatch attempt. It is
// informational only; a dispatch never fails the call that created the
// notification.
type DispatchResult map[string]bool

const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
)

// EmptyDispatchResult returns an all-false result covering every channel.
func EmptyDispatchResult() DispatchResult {
	return DispatchResult{
		ChannelInApp: false,
		ChannelEmail: false,
		ChannelSMS:   false,
		ChannelPush:  false,
	}
}

// PushResult aggregates one push fan-out across a user's endpoints.
type PushResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
