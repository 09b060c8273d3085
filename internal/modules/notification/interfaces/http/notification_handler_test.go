package http_test

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/application"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	ws "github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
	notificationhttp "github.com/saransh1220/notify-dispatch/internal/modules/notification/interfaces/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notificationRepoStub struct {
	createFn        func(context.Context, string, *domain.Notification) error
	getByIDFn       func(context.Context, string, uuid.UUID) (*domain.Notification, error)
	getByEntityFn   func(context.Context, string, uuid.UUID, string, int, int) ([]domain.Notification, error)
	markAsReadFn    func(context.Context, string, uuid.UUID, uuid.UUID) error
	markAllAsReadFn func(context.Context, string, uuid.UUID) ([]uuid.UUID, error)
	deleteFn        func(context.Context, string, uuid.UUID, uuid.UUID) error
	deleteAllFn     func(context.Context, string, uuid.UUID) (int64, error)
	unreadCountFn   func(context.Context, string, uuid.UUID) (int, error)
}

func (s notificationRepoStub) Create(ctx context.Context, tenantID string, n *domain.Notification) error {
	if s.createFn != nil {
		return s.createFn(ctx, tenantID, n)
	}
	return nil
}

func (s notificationRepoStub) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Notification, error) {
	return s.getByIDFn(ctx, tenantID, id)
}

func (s notificationRepoStub) GetByEntity(ctx context.Context, tenantID string, entityID uuid.UUID, entityType string, limit, offset int) ([]domain.Notification, error) {
	return s.getByEntityFn(ctx, tenantID, entityID, entityType, limit, offset)
}

func (s notificationRepoStub) MarkAsRead(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	return s.markAsReadFn(ctx, tenantID, id, entityID)
}

func (s notificationRepoStub) MarkAllAsRead(ctx context.Context, tenantID string, entityID uuid.UUID) ([]uuid.UUID, error) {
	return s.markAllAsReadFn(ctx, tenantID, entityID)
}

func (s notificationRepoStub) Delete(ctx context.Context, tenantID string, id, entityID uuid.UUID) error {
	return s.deleteFn(ctx, tenantID, id, entityID)
}

func (s notificationRepoStub) DeleteAllForEntity(ctx context.Context, tenantID string, entityID uuid.UUID) (int64, error) {
	return s.deleteAllFn(ctx, tenantID, entityID)
}

func (s notificationRepoStub) UnreadCount(ctx context.Context, tenantID string, entityID uuid.UUID) (int, error) {
	return s.unreadCountFn(ctx, tenantID, entityID)
}

type settingsStub struct{}

func (settingsStub) NotificationPreferences(context.Context, string, uuid.UUID) (domain.Preferences, error) {
	return domain.Preferences{InAppEnabled: true}, nil
}

func newHandler(t *testing.T, repo notificationRepoStub) (*notificationhttp.NotificationHandler, *ws.Hub) {
	t.Helper()
	hub := ws.NewHub(zap.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	resolver := application.NewPreferenceResolver(settingsStub{}, zap.NewNop())
	dispatcher := application.NewDispatcher(resolver, zap.NewNop())
	service := application.NewNotificationService(repo, dispatcher, hub, zap.NewNop())
	return notificationhttp.NewNotificationHandler(service, hub), hub
}

func authed(r *stdhttp.Request, userID uuid.UUID, tenantID string) *stdhttp.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUserId, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyTenant, tenantID)
	return r.WithContext(ctx)
}

func TestNotificationHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("persists and returns the record", func(t *testing.T) {
		var gotTenant string
		handler, _ := newHandler(t, notificationRepoStub{
			createFn: func(_ context.Context, tenantID string, n *domain.Notification) error {
				gotTenant = tenantID
				return nil
			},
		})

		body := `{"title":"Invoice due","message":"Pay up","type":"billing","priority":"high"}`
		req := authed(httptest.NewRequest(stdhttp.MethodPost, "/notifications", strings.NewReader(body)), userID, "acme")
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		require.Equal(t, stdhttp.StatusCreated, rec.Code)
		assert.Equal(t, "acme", gotTenant)

		var n domain.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
		assert.Equal(t, "Invoice due", n.Title)
		assert.Equal(t, domain.NotificationTypeBilling, n.Type)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{})

		req := authed(httptest.NewRequest(stdhttp.MethodPost, "/notifications", strings.NewReader(`{"message":"m"}`)), userID, "acme")
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{})

		req := httptest.NewRequest(stdhttp.MethodPost, "/notifications", strings.NewReader(`{"title":"t","message":"m"}`))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	})
}

func TestNotificationHandler_List(t *testing.T) {
	userID := uuid.New()

	t.Run("returns caller's notifications with paging", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			getByEntityFn: func(_ context.Context, tenantID string, entityID uuid.UUID, entityType string, limit, offset int) ([]domain.Notification, error) {
				assert.Equal(t, "acme", tenantID)
				assert.Equal(t, userID, entityID)
				assert.Equal(t, "user", entityType)
				assert.Equal(t, 5, limit)
				assert.Equal(t, 10, offset)
				return []domain.Notification{{ID: uuid.New(), Title: "one"}}, nil
			},
		})

		req := authed(httptest.NewRequest(stdhttp.MethodGet, "/notifications?limit=5&offset=10", nil), userID, "acme")
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var resp struct {
			Data []domain.Notification `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "one", resp.Data[0].Title)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			getByEntityFn: func(context.Context, string, uuid.UUID, string, int, int) ([]domain.Notification, error) {
				return nil, nil
			},
		})

		req := authed(httptest.NewRequest(stdhttp.MethodGet, "/notifications", nil), userID, "acme")
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	})
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("no content on success", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			markAsReadFn: func(_ context.Context, _ string, id, entityID uuid.UUID) error {
				assert.Equal(t, notifID, id)
				assert.Equal(t, userID, entityID)
				return nil
			},
		})

		req := authed(httptest.NewRequest(stdhttp.MethodPatch, "/notifications/"+notifID.String()+"/read", nil), userID, "acme")
		req.SetPathValue("id", notifID.String())
		rec := httptest.NewRecorder()
		handler.MarkAsRead(rec, req)

		assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			markAsReadFn: func(context.Context, string, uuid.UUID, uuid.UUID) error {
				return domain.ErrNotificationNotFound
			},
		})

		req := authed(httptest.NewRequest(stdhttp.MethodPatch, "/notifications/"+notifID.String()+"/read", nil), userID, "acme")
		req.SetPathValue("id", notifID.String())
		rec := httptest.NewRecorder()
		handler.MarkAsRead(rec, req)

		assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{})

		req := authed(httptest.NewRequest(stdhttp.MethodPatch, "/notifications/nope/read", nil), userID, "acme")
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()
		handler.MarkAsRead(rec, req)

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})
}

func TestNotificationHandler_MarkAllAsRead(t *testing.T) {
	userID := uuid.New()
	handler, _ := newHandler(t, notificationRepoStub{
		markAllAsReadFn: func(context.Context, string, uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{uuid.New(), uuid.New()}, nil
		},
	})

	req := authed(httptest.NewRequest(stdhttp.MethodPost, "/notifications/read-all", nil), userID, "acme")
	rec := httptest.NewRecorder()
	handler.MarkAllAsRead(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":2}`, rec.Body.String())
}

func TestNotificationHandler_Delete(t *testing.T) {
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("no content on success", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			deleteFn: func(context.Context, string, uuid.UUID, uuid.UUID) error { return nil },
		})

		req := authed(httptest.NewRequest(stdhttp.MethodDelete, "/notifications/"+notifID.String(), nil), userID, "acme")
		req.SetPathValue("id", notifID.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	})

	t.Run("storage failure is a server error", func(t *testing.T) {
		handler, _ := newHandler(t, notificationRepoStub{
			deleteFn: func(context.Context, string, uuid.UUID, uuid.UUID) error {
				return errors.New("db down")
			},
		})

		req := authed(httptest.NewRequest(stdhttp.MethodDelete, "/notifications/"+notifID.String(), nil), userID, "acme")
		req.SetPathValue("id", notifID.String())
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	})
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	userID := uuid.New()
	handler, _ := newHandler(t, notificationRepoStub{
		unreadCountFn: func(context.Context, string, uuid.UUID) (int, error) { return 7, nil },
	})

	req := authed(httptest.NewRequest(stdhttp.MethodGet, "/notifications/unread-count", nil), userID, "acme")
	rec := httptest.NewRecorder()
	handler.UnreadCount(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":7}`, rec.Body.String())
}

func TestNotificationHandler_GetByEntity(t *testing.T) {
	userID := uuid.New()
	deviceID := uuid.New()

	handler, _ := newHandler(t, notificationRepoStub{
		getByEntityFn: func(_ context.Context, _ string, entityID uuid.UUID, entityType string, _, _ int) ([]domain.Notification, error) {
			assert.Equal(t, deviceID, entityID)
			assert.Equal(t, "device", entityType)
			return []domain.Notification{{ID: uuid.New()}}, nil
		},
	})

	req := authed(httptest.NewRequest(stdhttp.MethodGet, "/notifications/entity/device/"+deviceID.String(), nil), userID, "acme")
	req.SetPathValue("type", "device")
	req.SetPathValue("id", deviceID.String())
	rec := httptest.NewRecorder()
	handler.GetByEntity(rec, req)

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}
