package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

var ErrInvalidSubscription = errors.New("subscription requires an endpoint and both keys")

// SubscriptionService manages push subscription records per user and
// endpoint.
type SubscriptionService struct {
	repo domain.SubscriptionRepository
	log  *zap.Logger
}

func NewSubscriptionService(repo domain.SubscriptionRepository, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, log: log}
}

// Save upserts a subscription keyed on (user, endpoint): re-registering
// the same endpoint refreshes its keys instead of creating a duplicate.
func (s *SubscriptionService) Save(ctx context.Context, tenantID string, userID uuid.UUID, endpoint string, keys domain.SubscriptionKeys, userAgent, deviceID *string) (*domain.PushSubscription, error) {
	if endpoint == "" || keys.P256dh == "" || keys.Auth == "" {
		return nil, ErrInvalidSubscription
	}

	sub := &domain.PushSubscription{
		UserID:    userID,
		Endpoint:  endpoint,
		P256dh:    keys.P256dh,
		Auth:      keys.Auth,
		UserAgent: userAgent,
		DeviceID:  deviceID,
	}
	saved, err := s.repo.Upsert(ctx, tenantID, sub)
	if err != nil {
		return nil, err
	}
	s.log.Debug("push subscription saved",
		zap.String("tenant", tenantID),
		zap.String("user", userID.String()),
		zap.String("endpoint", endpoint))
	return saved, nil
}

// Remove deletes the (user, endpoint) subscription and reports whether a
// row was removed.
func (s *SubscriptionService) Remove(ctx context.Context, tenantID string, userID uuid.UUID, endpoint string) (bool, error) {
	return s.repo.Delete(ctx, tenantID, userID, endpoint)
}

func (s *SubscriptionService) RemoveAll(ctx context.Context, tenantID string, userID uuid.UUID) (int64, error) {
	return s.repo.DeleteAllForUser(ctx, tenantID, userID)
}

func (s *SubscriptionService) List(ctx context.Context, tenantID string, userID uuid.UUID) ([]domain.PushSubscription, error) {
	return s.repo.GetByUser(ctx, tenantID, userID)
}
