package app

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/internal/service/appointment"
	"github.com/Alijeyrad/carepulse_backend/internal/service/auth"
	"github.com/Alijeyrad/carepulse_backend/internal/service/otp"
	"github.com/Alijeyrad/carepulse_backend/internal/service/patient"
	"github.com/Alijeyrad/carepulse_backend/internal/service/user"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/Alijeyrad/carepulse_backend/pkg/crypto"
	"github.com/Alijeyrad/carepulse_backend/pkg/events"
	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
	s3pkg "github.com/Alijeyrad/carepulse_backend/pkg/s3"
	"github.com/Alijeyrad/carepulse_backend/pkg/sms"
	otputil "github.com/Alijeyrad/carepulse_backend/pkg/util/otp"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideUserService,
		ProvidePatientService,
		ProvideAppointmentService,
		ProvideOTPService,
		ProvideAuthService,
		ProvidePasetoManager,
	),
)

func ProvideUserService(client *repo.Client, cfg *config.Config, authz authorize.IAuthorization) user.Service {
	return user.New(client.Users, cfg.Phone.DefaultRegion, authz)
}

func ProvidePatientService(client *repo.Client, storage *s3pkg.Client, cfg *config.Config) (patient.Service, error) {
	var key []byte
	if hexKey := cfg.Authentication.EncryptionKey; hexKey != "" {
		k, err := crypto.KeyFromHex(hexKey)
		if err != nil {
			return nil, err
		}
		key = k
	} else {
		slog.Warn("authentication.encryption_key is empty; sensitive patient fields will be rejected")
	}

	// keep a nil client out of the interface
	if storage == nil {
		return patient.New(client.Patients, nil, key), nil
	}
	return patient.New(client.Patients, storage, key), nil
}

func ProvideAppointmentService(client *repo.Client, smsCli *sms.Client, pub *events.Publisher, cfg *config.Config) appointment.Service {
	return appointment.New(client.Appointments, smsCli, pub, cfg.Appointment.RecentLimit)
}

func ProvideOTPService(rdb *redis.Client, smsCli *sms.Client, cfg *config.Config) (otp.Service, error) {
	return otp.New(rdb, smsCli, otputil.FromCentralConfig(cfg.OTP), smsCli.VerifiedNumber())
}

func ProvideAuthService(rdb *redis.Client, paseto *pasetotoken.Manager, cfg *config.Config) auth.Service {
	return auth.New(rdb, paseto, auth.FromCentralConfig(cfg.Authentication))
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
