package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/saransh1220/notify-dispatch/internal/gateway"
	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/gateways"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
	"github.com/saransh1220/notify-dispatch/internal/modules/settings"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/config"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/database"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/logger"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/tenant"
	"github.com/saransh1220/notify-dispatch/pkg/migration"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx := context.Background()

	// Primary database plus the per-tenant pools behind the router.
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.AutoMigrate(cfg, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	router := tenant.NewRouter(cfg.Tenants.DefaultTenant, db, cfg.Tenants.DSNs)
	defer router.Close()

	// Outbound gateways. A failed email/SMS client leaves that channel
	// disabled instead of crashing the process; push keys missing has the
	// same effect via a nil sender.
	var emailGateway domain.EmailGateway
	if g, err := gateways.NewSESEmailGateway(ctx, cfg.Email.Region, cfg.AWS.AccessKey, cfg.AWS.SecretKey); err != nil {
		log.Warn("email gateway unavailable, channel disabled", zap.Error(err))
	} else {
		emailGateway = g
	}

	var smsGateway domain.SMSGateway
	if g, err := gateways.NewSNSSMSGateway(ctx, cfg.SMS.Region, cfg.AWS.AccessKey, cfg.AWS.SecretKey); err != nil {
		log.Warn("sms gateway unavailable, channel disabled", zap.Error(err))
	} else {
		smsGateway = g
	}

	var pushGateway domain.WebPushGateway
	if sender := gateways.NewWebPushSender(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber); sender != nil {
		pushGateway = sender
	}

	// Redis backplane so room events reach clients on other instances.
	var backplane *websocket.Backplane
	if rdb, err := database.NewRedis(cfg.Redis); err != nil {
		log.Warn("redis unavailable, running with process-local rooms", zap.Error(err))
	} else {
		defer rdb.Close()
		backplane = websocket.NewBackplane(rdb, log)
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go backplane.Listen(listenCtx)
	}

	settingsModule := settings.NewModule(router, log)

	notificationModule := notification.NewModule(notification.Deps{
		Router:       router,
		Settings:     settingsModule.Service(),
		Directory:    settingsModule.Service(),
		EmailGateway: emailGateway,
		SMSGateway:   smsGateway,
		PushGateway:  pushGateway,
		EmailFrom:    cfg.Email.FromAddress,
		SMSFrom:      cfg.SMS.FromNumber,
		Backplane:    backplane,
		Log:          log,
	})
	defer notificationModule.Shutdown()

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware(cfg.JWT.Secret),
		NotificationHandler: notificationModule.HTTPHandler(),
		PushHandler:         notificationModule.PushHandler(),
		SettingsHandler:     settingsModule.HTTPHandler(),
	})

	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler, log)
	if err := server.Start(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
