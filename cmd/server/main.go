package main

import (
	"context"
	"fmt"
	"time"

	_ "vidhub/docs"

	"vidhub/internal/bootstrap"
	"vidhub/internal/delivery/http/handlers"
	"vidhub/internal/delivery/http/routers"
	"vidhub/internal/domain/repositories"
	"vidhub/internal/infrastructure/auth"
	"vidhub/internal/infrastructure/provider"
	"vidhub/internal/pkg/config"
	"vidhub/internal/usecases"
	"vidhub/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// @title        vidhub API
// @version      1.0
// @description  Video registration, provider webhook reconciliation and engagement counters.
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	fx.New(
		bootstrap.Core,
		fx.Provide(
			func(cfg *config.Config) repositories.AssetProvider {
				return provider.NewMuxClient(cfg.Provider.APIURL, cfg.Provider.TokenID, cfg.Provider.TokenSecret, cfg.Server.FrontendURL, cfg.Provider.Timeout)
			},
			func(cfg *config.Config) repositories.IdentityVerifier {
				return auth.NewJWTVerifier(cfg.Auth.JWTSecret)
			},
			func(cfg *config.Config, videos repositories.VideoRepository, dedup repositories.DedupCache) usecases.ViewCounter {
				return usecases.NewViewCounter(videos, dedup, cfg.Views.DedupTTL)
			},
			usecases.NewRegistrationService,
			usecases.NewLikeToggler,
			usecases.NewVideoQuery,
			usecases.NewUploadService,
			usecases.NewCommentService,
			handlers.NewObserver,
			handlers.NewWebhookHandler,
			handlers.NewVideoHandler,
			handlers.NewUploadHandler,
			handlers.NewCommentHandler,
			newApp,
		),
		fx.Invoke(startServer),
	).Run()
}

type routeParams struct {
	fx.In

	Config   *config.Config
	Log      *zap.Logger
	Verifier repositories.IdentityVerifier
	Uploads  usecases.UploadService
	Webhooks *handlers.WebhookHandler
	Videos   *handlers.VideoHandler
	Upload   *handlers.UploadHandler
	Comments *handlers.CommentHandler
	Gatherer prometheus.Gatherer
}

func newApp(p routeParams) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errors.FiberErrorHandler(p.Log),
		// Webhook bodies are small JSON documents.
		BodyLimit: 1 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: p.Config.Server.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routers.SetupRoutes(app, routers.Deps{
		Verifier: p.Verifier,
		Users:    p.Uploads,
		Webhooks: p.Webhooks,
		Videos:   p.Videos,
		Uploads:  p.Upload,
		Comments: p.Comments,
		Gatherer: p.Gatherer,
		Log:      p.Log,
	})
	return app
}

func startServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("server starting", zap.String("addr", addr))
			go func() {
				if err := app.Listen(addr); err != nil {
					log.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return app.ShutdownWithContext(ctx)
		},
	})
}
