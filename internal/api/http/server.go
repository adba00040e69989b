package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/router"
	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
	"github.com/Alijeyrad/carepulse_backend/pkg/observability"
	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := fiber.New(appConfig(p.Cfg))

	if p.OTel != nil && p.Cfg.Observability.Tracing.Enabled {
		app.Use(observability.Middleware(observability.MiddlewareConfig{
			SkipPaths: []string{"/livez", "/readyz", "/startupz", p.Cfg.Observability.Metrics.Path},
		}))
	}

	configureGlobalMiddleware(app, p.Cfg, p.Redis)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func appConfig(cfg *config.Config) fiber.Config {
	fc := fiber.Config{
		AppName:      constants.AppName,
		ErrorHandler: errorHandler,
	}
	if cfg.Server.BodyLimitMB > 0 {
		fc.BodyLimit = cfg.Server.BodyLimitMB << 20
	}
	if cfg.Server.TimeoutSeconds > 0 {
		t := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		fc.ReadTimeout = t
		fc.WriteTimeout = t
	}
	return fc
}

// errorHandler renders errors that escaped the handlers in the same
// {"error": ...} shape the handlers use.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		reqctx.Logger(c.Context()).Error("unhandled error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		if cfg.Server.CORS.Enabled {
			app.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.Server.CORS.AllowOrigins,
				AllowMethods:     cfg.Server.CORS.AllowMethods,
				AllowHeaders:     cfg.Server.CORS.AllowHeaders,
				AllowCredentials: cfg.Server.CORS.AllowCredentials,
				MaxAge:           cfg.Server.CORS.MaxAgeSeconds,
			}))
		}
		app.Use(middleware.NewLimiterWithRedis(rdb, cfg.Server.RateLimit))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:" + middleware.LocalRequestID + "}] ${method} ${url} ${status} ${latency}\n",
	}))
}
