package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
	"github.com/spf13/viper"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	viper.SetConfigName(constants.ConfigName)
	viper.SetConfigType(constants.ConfigFormat)
	viper.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. CAREPULSE_MONGO_URI overrides mongo.uri
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read the config file (optional in Docker environments)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if os.Getenv(constants.EnvPrefix+"_MONGO_URI") == "" {
				return nil, fmt.Errorf("error reading config file: %v", err)
			}
		}
	}

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// ones a container is expected to inject without a file.
	for _, key := range []string{
		"mongo.uri", "mongo.database",
		"redis.addr", "redis.password",
		"authentication.encryption_key", "authentication.admin.passkey",
		"authentication.paseto.local_key_hex",
		"sms.twilio.account_sid", "sms.twilio.auth_token", "sms.twilio.messaging_service_sid",
		"sms.verified_number",
		"storage.access_key_id", "storage.secret_access_key",
		"nats.url",
	} {
		_ = viper.BindEnv(key)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}
