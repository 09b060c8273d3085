package domain

import (
	"context"

	"github.com/google/uuid"
)

// NotificationRepository is the tenant-scoped durable store of
// notification records. Every method takes the tenant id explicitly; the
// implementation resolves the tenant's own database handle per call.
type NotificationRepository interface {
	Create(ctx context.Context, tenantID string, n *Notification) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*Notification, error)
	GetByEntity(ctx context.Context, tenantID string, entityID uuid.UUID, entityType string, limit, offset int) ([]Notification, error)
	MarkAsRead(ctx context.Context, tenantID string, id, entityID uuid.UUID) error
	// MarkAllAsRead flips every unread row for the entity and returns the
	// ids of the rows it affected.
	MarkAllAsRead(ctx context.Context, tenantID string, entityID uuid.UUID) ([]uuid.UUID, error)
	Delete(ctx context.Context, tenantID string, id, entityID uuid.UUID) error
	DeleteAllForEntity(ctx context.Context, tenantID string, entityID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, tenantID string, entityID uuid.UUID) (int, error)
}

// SubscriptionRepository stores push subscriptions, tenant-scoped like the
// notification store.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, tenantID string, sub *PushSubscription) (*PushSubscription, error)
	GetByUser(ctx context.Context, tenantID string, userID uuid.UUID) ([]PushSubscription, error)
	Delete(ctx context.Context, tenantID string, userID uuid.UUID, endpoint string) (bool, error)
	DeleteAllForUser(ctx context.Context, tenantID string, userID uuid.UUID) (int64, error)
}

// SettingsReader exposes the slice of the user settings aggregate this
// module needs. Implemented by the settings module.
type SettingsReader interface {
	NotificationPreferences(ctx context.Context, tenantID string, userID uuid.UUID) (Preferences, error)
}

// UserDirectory resolves recipient contact details inside one tenant.
type UserDirectory interface {
	EmailFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error)
	PhoneFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error)
}

// EmailMessage is the outbound email gateway contract.
type EmailMessage struct {
	To      string
	From    string
	Subject string
	HTML    string
	Text    string
}

type EmailGateway interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMSMessage is the outbound SMS gateway contract. Body is capped at 1600
// characters by the channel before it reaches the gateway.
type SMSMessage struct {
	To   string
	From string
	Body string
}

type SMSGateway interface {
	Send(ctx context.Context, msg SMSMessage) error
}

// WebPushGateway delivers one signed payload to one endpoint. A
// permanently invalid endpoint is reported as ErrEndpointGone.
type WebPushGateway interface {
	Send(ctx context.Context, endpoint string, keys SubscriptionKeys, payload []byte) error
}

// RoomPublisher is the real-time transport the in-app channel publishes
// to. Delivery is fire-and-forget; nobody listening means the event is
// dropped.
type RoomPublisher interface {
	Publish(room, event string, payload interface{})
}
