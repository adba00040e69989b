package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/handler"
	"github.com/Alijeyrad/carepulse_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/internal/service/auth"
	"github.com/Alijeyrad/carepulse_backend/internal/service/otp"
	"github.com/Alijeyrad/carepulse_backend/internal/service/patient"
	"github.com/Alijeyrad/carepulse_backend/internal/service/user"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg            *config.Config
	Redis          *redis.Client `optional:"true"`
	DB             *repo.Client  `optional:"true"`
	Auth           authorize.IAuthorization
	UserSvc        user.Service
	PatientSvc     patient.Service
	AppointmentSvc appointment.Service
	OTPSvc         otp.Service
	AuthSvc        auth.Service
	PasetoMgr      *pasetotoken.Manager
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.AuthSvc)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	userH := handler.NewUserHandler(r.p.UserSvc, r.p.PatientSvc, r.p.AppointmentSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc)
	otpH := handler.NewOTPHandler(r.p.OTPSvc)
	legacyH := handler.NewLegacyHandler(r.p.UserSvc, r.p.OTPSvc)

	r.registerLegacyRoutes(app.Group("/api"), legacyH)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerOTPRoutes(api, otpH)
	r.registerUserRoutes(api, userH)
	r.registerPatientRoutes(api, patientH)
	r.registerAppointmentRoutes(api, appointmentH)
	r.registerAdminRoutes(api, authH, appointmentH, patientH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.ready(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether Mongo and Redis answer within two seconds.
func (r *Router) ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if r.p.DB != nil {
		if err := r.p.DB.Ping(ctx); err != nil {
			return false
		}
	}
	if r.p.Redis != nil {
		if err := r.p.Redis.Ping(ctx).Err(); err != nil {
			return false
		}
	}
	return true
}
