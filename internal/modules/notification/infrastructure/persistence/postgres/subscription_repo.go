package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
)

type PgSubscriptionRepository struct {
	router *tenant.Router
}

func NewPgSubscriptionRepository(router *tenant.Router) *PgSubscriptionRepository {
	return &PgSubscriptionRepository{router: router}
}

// Upsert inserts the subscription or, when (user_id, endpoint) already
// exists, refreshes its keys and device details in place. The persisted
// row is returned.
func (r *PgSubscriptionRepository) Upsert(ctx context.Context, tenantID string, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, user_agent, device_id, created_at, updated_at)
		VALUES (:id, :user_id, :endpoint, :p256dh, :auth, :user_agent, :device_id, :created_at, :updated_at)
		ON CONFLICT (user_id, endpoint) DO UPDATE
		SET p256dh = EXCLUDED.p256dh,
		    auth = EXCLUDED.auth,
		    user_agent = EXCLUDED.user_agent,
		    device_id = EXCLUDED.device_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING *
	`
	rows, err := db.NamedQueryContext(ctx, query, sub)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	var saved domain.PushSubscription
	if err := rows.StructScan(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgSubscriptionRepository) GetByUser(ctx context.Context, tenantID string, userID uuid.UUID) ([]domain.PushSubscription, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	var subs []domain.PushSubscription
	query := `SELECT * FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at`
	if err := db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, err
	}
	return subs, nil
}

// Delete removes the (user, endpoint) row and reports whether one existed.
func (r *PgSubscriptionRepository) Delete(ctx context.Context, tenantID string, userID uuid.UUID, endpoint string) (bool, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`, userID, endpoint)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PgSubscriptionRepository) DeleteAllForUser(ctx context.Context, tenantID string, userID uuid.UUID) (int64, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
