package settings

import (
	"github.com/saransh1220/notify-dispatch/internal/modules/settings/application"
	"github.com/saransh1220/notify-dispatch/internal/modules/settings/infrastructure/persistence/postgres"
	settings_http "github.com/saransh1220/notify-dispatch/internal/modules/settings/interfaces/http"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
	"go.uber.org/zap"
)

type Module struct {
	service *application.SettingsService
	handler *settings_http.SettingsHandler
}

func NewModule(router *tenant.Router, log *zap.Logger) *Module {
	repo := postgres.NewPgSettingsRepository(router)
	service := application.NewSettingsService(repo, log)

	return &Module{
		service: service,
		handler: settings_http.NewSettingsHandler(service),
	}
}

func (m *Module) Service() *application.SettingsService {
	return m.service
}

func (m *Module) HTTPHandler() *settings_http.SettingsHandler {
	return m.handler
}
