package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"go.uber.org/zap"
)

// PreferenceResolver reads a user's channel toggles from the settings
// aggregate. A failed lookup never propagates: the resolver falls back to
// the restrictive preference set so the in-app channel still fires.
type PreferenceResolver struct {
	settings domain.SettingsReader
	log      *zap.Logger
}

func NewPreferenceResolver(settings domain.SettingsReader, log *zap.Logger) *PreferenceResolver {
	return &PreferenceResolver{settings: settings, log: log}
}

func (r *PreferenceResolver) Resolve(ctx context.Context, tenantID string, userID uuid.UUID) domain.Preferences {
	prefs, err := r.settings.NotificationPreferences(ctx, tenantID, userID)
	if err != nil {
		r.log.Warn("preference lookup failed, using restrictive fallback",
			zap.String("tenant", tenantID),
			zap.String("user", userID.String()),
			zap.Error(err))
		return domain.FallbackPreferences()
	}
	return prefs
}
