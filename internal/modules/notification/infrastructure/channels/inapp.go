package channels

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
)

// EventNotification is the room event carrying a full notification payload.
const EventNotification = "notification"

// EventNotificationRead carries the bare id of a notification that was
// marked read.
const EventNotificationRead = "notificationRead"

// NotificationPayload is the normalized shape emitted to the room.
type NotificationPayload struct {
	ID        uuid.UUID               `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	Priority  domain.Priority         `json:"priority"`
	IsRead    bool                    `json:"isRead"`
	Metadata  domain.Metadata         `json:"metadata"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// InAppChannel publishes notifications to the recipient's real-time room.
// Fire-and-forget: no acknowledgment, no retry, no offline queue. A client
// that was offline reconciles against the persisted records on reconnect.
type InAppChannel struct {
	rooms domain.RoomPublisher
}

func NewInAppChannel(rooms domain.RoomPublisher) *InAppChannel {
	return &InAppChannel{rooms: rooms}
}

func (c *InAppChannel) Name() string { return domain.ChannelInApp }

func (c *InAppChannel) Enabled(prefs domain.Preferences) bool { return prefs.InAppEnabled }

func (c *InAppChannel) Send(ctx context.Context, tenantID string, userID uuid.UUID, n *domain.Notification) (bool, error) {
	c.rooms.Publish(websocket.UserRoom(userID), EventNotification, NotificationPayload{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Priority:  n.Priority,
		IsRead:    n.IsRead,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	})
	return true, nil
}
