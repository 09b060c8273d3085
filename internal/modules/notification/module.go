package notification

import (
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/application"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/channels"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
	notification_http "github.com/saransh1220/notify-dispatch/internal/modules/notification/interfaces/http"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
	"go.uber.org/zap"
)

// Deps are the external collaborators the module is wired with. PushGateway
// may be nil (channel permanently disabled); Backplane may be nil
// (single-instance room registry).
type Deps struct {
	Router       *tenant.Router
	Settings     domain.SettingsReader
	Directory    domain.UserDirectory
	EmailGateway domain.EmailGateway
	SMSGateway   domain.SMSGateway
	PushGateway  domain.WebPushGateway
	EmailFrom    string
	SMSFrom      string
	Backplane    *websocket.Backplane
	Log          *zap.Logger
}

type Module struct {
	service     *application.NotificationService
	subs        *application.SubscriptionService
	dispatcher  *application.Dispatcher
	hub         *websocket.Hub
	handler     *notification_http.NotificationHandler
	pushHandler *notification_http.PushHandler
}

func NewModule(deps Deps) *Module {
	hub := websocket.NewHub(deps.Log)
	if deps.Backplane != nil {
		hub.SetBackplane(deps.Backplane)
	}
	go hub.Run()

	notifRepo := postgres.NewPgNotificationRepository(deps.Router)
	subRepo := postgres.NewPgSubscriptionRepository(deps.Router)

	resolver := application.NewPreferenceResolver(deps.Settings, deps.Log)

	dispatcher := application.NewDispatcher(resolver, deps.Log,
		channels.NewInAppChannel(hub),
		channels.NewEmailChannel(deps.EmailGateway, deps.Directory, deps.EmailFrom, deps.Log),
		channels.NewSmsChannel(deps.SMSGateway, deps.Directory, deps.SMSFrom, deps.Log),
		channels.NewPushChannel(subRepo, deps.PushGateway, deps.Log),
	)

	service := application.NewNotificationService(notifRepo, dispatcher, hub, deps.Log)
	subs := application.NewSubscriptionService(subRepo, deps.Log)

	return &Module{
		service:     service,
		subs:        subs,
		dispatcher:  dispatcher,
		hub:         hub,
		handler:     notification_http.NewNotificationHandler(service, hub),
		pushHandler: notification_http.NewPushHandler(subs),
	}
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}

func (m *Module) PushHandler() *notification_http.PushHandler {
	return m.pushHandler
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

func (m *Module) Hub() *websocket.Hub {
	return m.hub
}

func (m *Module) Shutdown() {
	m.hub.Stop()
}
