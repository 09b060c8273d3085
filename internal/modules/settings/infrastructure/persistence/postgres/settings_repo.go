package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/settings/domain"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
)

type PgSettingsRepository struct {
	router *tenant.Router
}

func NewPgSettingsRepository(router *tenant.Router) *PgSettingsRepository {
	return &PgSettingsRepository{router: router}
}

func (r *PgSettingsRepository) GetByUser(ctx context.Context, tenantID string, userID uuid.UUID) (*domain.UserSettings, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	var s domain.UserSettings
	err = db.GetContext(ctx, &s, `SELECT * FROM user_settings WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgSettingsRepository) Upsert(ctx context.Context, tenantID string, settings *domain.UserSettings) error {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return err
	}

	now := time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	query := `
		INSERT INTO user_settings (user_id, email, phone, email_notifications, sms_notifications, push_notifications, in_app_notifications, created_at, updated_at)
		VALUES (:user_id, :email, :phone, :email_notifications, :sms_notifications, :push_notifications, :in_app_notifications, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    email_notifications = EXCLUDED.email_notifications,
		    sms_notifications = EXCLUDED.sms_notifications,
		    push_notifications = EXCLUDED.push_notifications,
		    in_app_notifications = EXCLUDED.in_app_notifications,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = db.NamedExecContext(ctx, query, settings)
	return err
}
