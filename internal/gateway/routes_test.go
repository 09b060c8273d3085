package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	notification_http "github.com/saransh1220/notify-dispatch/internal/modules/notification/interfaces/http"
	settings_http "github.com/saransh1220/notify-dispatch/internal/modules/settings/interfaces/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMux() *http.ServeMux {
	return SetupRoutes(RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware("test-secret"),
		NotificationHandler: &notification_http.NotificationHandler{},
		PushHandler:         &notification_http.PushHandler{},
		SettingsHandler:     &settings_http.SettingsHandler{},
	})
}

func TestSetupRoutes_HealthCheck(t *testing.T) {
	mux := testMux()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestSetupRoutes_MetricsExposed(t *testing.T) {
	mux := testMux()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	mux := testMux()

	protected := []struct {
		method string
		path   string
	}{
		{"POST", "/notifications"},
		{"GET", "/notifications"},
		{"GET", "/notifications/unread-count"},
		{"PATCH", "/notifications/read-all"},
		{"DELETE", "/notifications"},
		{"POST", "/push/subscriptions"},
		{"GET", "/push/subscriptions"},
		{"DELETE", "/push/subscriptions"},
		{"GET", "/settings"},
		{"PATCH", "/settings"},
		{"GET", "/ws"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
