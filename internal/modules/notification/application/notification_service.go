package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/channels"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
	"go.uber.org/zap"
)

const dispatchTimeout = 30 * time.Second

// NotificationService owns the durable notification records and triggers
// delivery. Persistence always succeeds or fails on its own; delivery runs
// detached and its outcome is never surfaced to the caller that created
// the notification.
type NotificationService struct {
	repo       domain.NotificationRepository
	dispatcher *Dispatcher
	rooms      domain.RoomPublisher
	log        *zap.Logger

	// dispatchAsync is disabled in tests that need a deterministic result.
	dispatchAsync bool
}

func NewNotificationService(repo domain.NotificationRepository, dispatcher *Dispatcher, rooms domain.RoomPublisher, log *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:          repo,
		dispatcher:    dispatcher,
		rooms:         rooms,
		log:           log,
		dispatchAsync: true,
	}
}

// CreateInput carries everything a triggering module supplies.
type CreateInput struct {
	Title        string
	Message      string
	Type         domain.NotificationType
	Priority     domain.Priority
	EntityID     *uuid.UUID
	EntityType   string
	Metadata     domain.Metadata
	EmailSubject *string
	HTMLContent  *string
}

// Create persists the record and, when it has a recipient, kicks off
// delivery without blocking the caller. The returned notification is the
// persisted row regardless of any delivery outcome.
func (s *NotificationService) Create(ctx context.Context, tenantID string, in CreateInput) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:           uuid.New(),
		Title:        in.Title,
		Message:      in.Message,
		Type:         in.Type,
		Priority:     in.Priority,
		EntityID:     in.EntityID,
		EntityType:   in.EntityType,
		Metadata:     in.Metadata,
		IsRead:       false,
		EmailSubject: in.EmailSubject,
		HTMLContent:  in.HTMLContent,
	}
	if n.Type == "" {
		n.Type = domain.NotificationTypeInfo
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityNormal
	}

	if err := s.repo.Create(ctx, tenantID, n); err != nil {
		return nil, err
	}

	if n.EntityID != nil {
		if s.dispatchAsync {
			go s.dispatch(tenantID, n)
		} else {
			s.dispatch(tenantID, n)
		}
	}

	return n, nil
}

func (s *NotificationService) dispatch(tenantID string, n *domain.Notification) {
	// Detached from the request that created the record.
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	result := s.dispatcher.Dispatch(ctx, tenantID, n)
	s.log.Info("notification dispatched",
		zap.String("tenant", tenantID),
		zap.String("notification", n.ID.String()),
		zap.Any("channels", result))
}

func (s *NotificationService) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Notification, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, tenantID string, entityID uuid.UUID, entityType string, limit, offset int) ([]domain.Notification, error) {
	if entityType == "" {
		entityType = "user"
	}
	return s.repo.GetByEntity(ctx, tenantID, entityID, entityType, limit, offset)
}

// MarkAsRead flips one row and emits a notificationRead event to the
// recipient's room.
func (s *NotificationService) MarkAsRead(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, tenantID, id, entityID); err != nil {
		return err
	}
	s.rooms.Publish(websocket.UserRoom(entityID), channels.EventNotificationRead, id)
	return nil
}

// MarkAllAsRead flips every unread row for the recipient, emitting one
// notificationRead event per affected id.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, tenantID string, entityID uuid.UUID) (int, error) {
	ids, err := s.repo.MarkAllAsRead(ctx, tenantID, entityID)
	if err != nil {
		return 0, err
	}
	room := websocket.UserRoom(entityID)
	for _, id := range ids {
		s.rooms.Publish(room, channels.EventNotificationRead, id)
	}
	return len(ids), nil
}

func (s *NotificationService) Delete(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id, entityID)
}

func (s *NotificationService) DeleteAll(ctx context.Context, tenantID string, entityID uuid.UUID) (int64, error) {
	return s.repo.DeleteAllForEntity(ctx, tenantID, entityID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, tenantID string, entityID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, tenantID, entityID)
}
