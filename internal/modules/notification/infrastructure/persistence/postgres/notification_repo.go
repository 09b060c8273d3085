package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
)

type PgNotificationRepository struct {
	router *tenant.Router
}

func NewPgNotificationRepository(router *tenant.Router) *PgNotificationRepository {
	return &PgNotificationRepository{router: router}
}

func (r *PgNotificationRepository) Create(ctx context.Context, tenantID string, n *domain.Notification) error {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return err
	}

	now := time.Now()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = now
	}
	if n.EntityType == "" {
		n.EntityType = "user"
	}

	query := `
		INSERT INTO notifications (id, title, message, type, priority, entity_id, entity_type, metadata, is_read, email_subject, html_content, created_at, updated_at)
		VALUES (:id, :title, :message, :type, :priority, :entity_id, :entity_type, :metadata, :is_read, :email_subject, :html_content, :created_at, :updated_at)
	`
	_, err = db.NamedExecContext(ctx, query, n)
	return err
}

func (r *PgNotificationRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Notification, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	var n domain.Notification
	err = db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) GetByEntity(ctx context.Context, tenantID string, entityID uuid.UUID, entityType string, limit, offset int) ([]domain.Notification, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT * FROM notifications
		WHERE entity_id = $1 AND entity_type = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	var notifications []domain.Notification
	if err := db.SelectContext(ctx, &notifications, query, entityID, entityType, limit, offset); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *PgNotificationRepository) MarkAsRead(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return err
	}

	query := `
		UPDATE notifications
		SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND entity_id = $2
	`
	res, err := db.ExecContext(ctx, query, id, entityID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) MarkAllAsRead(ctx context.Context, tenantID string, entityID uuid.UUID) ([]uuid.UUID, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE notifications
		SET is_read = TRUE, updated_at = NOW()
		WHERE entity_id = $1 AND is_read = FALSE
		RETURNING id
	`
	var ids []uuid.UUID
	if err := db.SelectContext(ctx, &ids, query, entityID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PgNotificationRepository) Delete(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND entity_id = $2`, id, entityID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) DeleteAllForEntity(ctx context.Context, tenantID string, entityID uuid.UUID) (int64, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM notifications WHERE entity_id = $1`, entityID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, tenantID string, entityID uuid.UUID) (int, error) {
	db, err := r.router.DB(tenantID)
	if err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE entity_id = $1 AND is_read = FALSE`, entityID)
	return count, err
}
