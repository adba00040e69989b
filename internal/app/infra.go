package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/Alijeyrad/carepulse_backend/pkg/database"
	"github.com/Alijeyrad/carepulse_backend/pkg/email"
	"github.com/Alijeyrad/carepulse_backend/pkg/events"
	"github.com/Alijeyrad/carepulse_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/carepulse_backend/pkg/redis"
	s3pkg "github.com/Alijeyrad/carepulse_backend/pkg/s3"
	"github.com/Alijeyrad/carepulse_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRepoClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideS3Client),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideEventPublisher),
)

func ProvideRepoClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	dbCfg := database.FromCentralConfig(cfg.Mongo)
	client, db, err := database.NewDatabase(context.Background(), dbCfg)
	if err != nil {
		return nil, err
	}
	rc := repo.New(db, dbCfg)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return rc.EnsureIndexes(ctx)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing mongo connection")
			return client.Disconnect(ctx)
		},
	})
	return rc, nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	acfg := authorize.FromCentralConfig(cfg.Authorization)
	enforcer, err := authorize.NewEnforcer(acfg)
	if err != nil {
		return nil, err
	}
	auth, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		return nil, err
	}
	if acfg.EnableAudit {
		auth = authorize.NewAuditedAuthorization(auth, slog.Default())
	}
	if err := authorize.SeedDefaultPolicies(context.Background(), auth); err != nil {
		return nil, err
	}
	return auth, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

// ProvideS3Client returns nil when no bucket is configured.
func ProvideS3Client(cfg *config.Config) (*s3pkg.Client, error) {
	if cfg.Storage.Bucket == "" {
		slog.Warn("object storage not configured; identification uploads disabled")
		return nil, nil
	}
	return s3pkg.New(cfg.Storage)
}

// ProvideNatsClient returns nil when nats.url is empty; events are then
// dropped and the email worker does not start.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		slog.Warn("nats not configured; appointment events disabled")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name("carepulse"))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideEventPublisher(nc *nats.Conn) *events.Publisher {
	return events.NewPublisher(nc)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
