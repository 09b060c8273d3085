package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	notifdomain "github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/settings/domain"
	"go.uber.org/zap"
)

// SettingsService manages the user settings aggregate and exposes the
// read-side collaborators the notification module depends on.
type SettingsService struct {
	repo domain.SettingsRepository
	log  *zap.Logger
}

func NewSettingsService(repo domain.SettingsRepository, log *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

// Get returns the user's settings, or the defaults when none are stored.
func (s *SettingsService) Get(ctx context.Context, tenantID string, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.repo.GetByUser(ctx, tenantID, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		defaults := domain.NewDefaults(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateInput carries a partial settings update; nil fields keep their
// stored value.
type UpdateInput struct {
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	EmailNotifications *bool   `json:"email_notifications"`
	SMSNotifications   *bool   `json:"sms_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	InAppNotifications *bool   `json:"in_app_notifications"`
}

func (s *SettingsService) Update(ctx context.Context, tenantID string, userID uuid.UUID, in UpdateInput) (*domain.UserSettings, error) {
	current, err := s.Get(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		current.Email = *in.Email
	}
	if in.Phone != nil {
		current.Phone = *in.Phone
	}
	if in.EmailNotifications != nil {
		current.EmailNotifications = *in.EmailNotifications
	}
	if in.SMSNotifications != nil {
		current.SMSNotifications = *in.SMSNotifications
	}
	if in.PushNotifications != nil {
		current.PushNotifications = *in.PushNotifications
	}
	if in.InAppNotifications != nil {
		current.InAppNotifications = *in.InAppNotifications
	}

	if err := s.repo.Upsert(ctx, tenantID, current); err != nil {
		return nil, err
	}
	return current, nil
}

// NotificationPreferences implements the notification module's
// SettingsReader. A user without stored settings gets the defaults; only a
// failed lookup is an error (the resolver then falls back restrictively).
func (s *SettingsService) NotificationPreferences(ctx context.Context, tenantID string, userID uuid.UUID) (notifdomain.Preferences, error) {
	settings, err := s.repo.GetByUser(ctx, tenantID, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return notifdomain.DefaultPreferences(), nil
	}
	if err != nil {
		return notifdomain.Preferences{}, err
	}
	return notifdomain.Preferences{
		EmailEnabled: settings.EmailNotifications,
		SMSEnabled:   settings.SMSNotifications,
		PushEnabled:  settings.PushNotifications,
		InAppEnabled: settings.InAppNotifications,
	}, nil
}

// EmailFor implements the notification module's UserDirectory.
func (s *SettingsService) EmailFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error) {
	settings, err := s.repo.GetByUser(ctx, tenantID, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return settings.Email, nil
}

// PhoneFor implements the notification module's UserDirectory.
func (s *SettingsService) PhoneFor(ctx context.Context, tenantID string, userID uuid.UUID) (string, error) {
	settings, err := s.repo.GetByUser(ctx, tenantID, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return settings.Phone, nil
}
