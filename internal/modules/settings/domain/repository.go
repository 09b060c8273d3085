package domain

import (
	"context"

	"github.com/google/uuid"
)

type SettingsRepository interface {
	GetByUser(ctx context.Context, tenantID string, userID uuid.UUID) (*UserSettings, error)
	Upsert(ctx context.Context, tenantID string, settings *UserSettings) error
}
