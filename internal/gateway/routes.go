package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	notification_http "github.com/saransh1220/notify-dispatch/internal/modules/notification/interfaces/http"
	settings_http "github.com/saransh1220/notify-dispatch/internal/modules/settings/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleWare
	NotificationHandler *notification_http.NotificationHandler
	PushHandler         *notification_http.PushHandler
	SettingsHandler     *settings_http.SettingsHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	auth := config.AuthMiddleware.RequireAuth

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Notification Routes
	mux.Handle("POST /notifications", auth(http.HandlerFunc(config.NotificationHandler.Create)))
	mux.Handle("GET /notifications", auth(http.HandlerFunc(config.NotificationHandler.List)))
	mux.Handle("GET /notifications/unread-count", auth(http.HandlerFunc(config.NotificationHandler.UnreadCount)))
	mux.Handle("GET /notifications/entity/{type}/{id}", auth(http.HandlerFunc(config.NotificationHandler.GetByEntity)))
	mux.Handle("GET /notifications/{id}", auth(http.HandlerFunc(config.NotificationHandler.Get)))
	mux.Handle("PATCH /notifications/{id}/read", auth(http.HandlerFunc(config.NotificationHandler.MarkAsRead)))
	mux.Handle("PATCH /notifications/read-all", auth(http.HandlerFunc(config.NotificationHandler.MarkAllAsRead)))
	mux.Handle("DELETE /notifications/{id}", auth(http.HandlerFunc(config.NotificationHandler.Delete)))
	mux.Handle("DELETE /notifications", auth(http.HandlerFunc(config.NotificationHandler.DeleteAll)))

	// Push Subscription Routes
	mux.Handle("POST /push/subscriptions", auth(http.HandlerFunc(config.PushHandler.Subscribe)))
	mux.Handle("DELETE /push/subscriptions", auth(http.HandlerFunc(config.PushHandler.Unsubscribe)))
	mux.Handle("GET /push/subscriptions", auth(http.HandlerFunc(config.PushHandler.List)))

	// Settings Routes
	mux.Handle("GET /settings", auth(http.HandlerFunc(config.SettingsHandler.Get)))
	mux.Handle("PATCH /settings", auth(http.HandlerFunc(config.SettingsHandler.Update)))

	// Real-time Subscription
	mux.Handle("GET /ws", auth(http.HandlerFunc(config.NotificationHandler.Subscribe)))

	return mux
}
