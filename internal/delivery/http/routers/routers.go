package routers

import (
	"vidhub/internal/delivery/http/handlers"
	"vidhub/internal/delivery/http/middleware"
	"vidhub/internal/domain/repositories"
	consts "vidhub/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Verifier repositories.IdentityVerifier
	Users    middleware.UserResolver
	Webhooks *handlers.WebhookHandler
	Videos   *handlers.VideoHandler
	Uploads  *handlers.UploadHandler
	Comments *handlers.CommentHandler
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

func SetupRoutes(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	SetupWebhookRoutes(api, d)
	SetupVideoRoutes(api, d)
}

func SetupWebhookRoutes(api fiber.Router, d Deps) {
	api.Post("/webhooks/mux", d.Webhooks.Receive)
}

func SetupVideoRoutes(api fiber.Router, d Deps) {
	auth := middleware.RequireAuth(d.Verifier, d.Users, d.Log)
	optional := middleware.OptionalAuth(d.Verifier, d.Users)

	api.Post("/uploads", auth, d.Uploads.CreateDirectUpload)

	api.Get("/videos", d.Videos.List)
	api.Post("/videos", auth, d.Videos.Register)
	api.Get("/videos/mine", auth, d.Videos.Mine)
	api.Get("/videos/:id", d.Videos.Detail)
	api.Delete("/videos/:id", auth, d.Videos.Delete)
	api.Post("/videos/:id/views", optional, d.Videos.RecordView)
	api.Post("/videos/:id/like", auth, d.Videos.ToggleLike)
	api.Get("/videos/:id/comments", d.Comments.List)
	api.Post("/videos/:id/comments", auth, d.Comments.Create)
}
