package system

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/carepulse_backend/config"
	"github.com/Alijeyrad/carepulse_backend/internal/repo"
	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	"github.com/Alijeyrad/carepulse_backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Build MongoDB indexes and seed authorization policies",
		Long: `Build the MongoDB indexes the repositories rely on and seed the
default Casbin policies. When authorization.policy_path is set the seeded
policies are written to that CSV file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(cfg))
			defer cancel()

			fmt.Println("Building MongoDB indexes.")
			dbCfg := database.FromCentralConfig(cfg.Mongo)
			client, db, err := database.NewDatabase(ctx, dbCfg)
			if err != nil {
				return fmt.Errorf("failed to connect to mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			if err := repo.New(db, dbCfg).EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to build indexes: %w", err)
			}

			fmt.Println("Seeding Casbin policies.")
			acfg := authorize.FromCentralConfig(cfg.Authorization)
			enforcer, err := authorize.NewEnforcer(acfg)
			if err != nil {
				return fmt.Errorf("failed to create enforcer: %w", err)
			}

			auth, err := authorize.NewAuthorization(enforcer)
			if err != nil {
				return fmt.Errorf("failed to create authorization: %w", err)
			}

			if err := authorize.SeedDefaultPolicies(ctx, auth); err != nil {
				return fmt.Errorf("failed to seed policies: %w", err)
			}

			if acfg.PolicyPath != "" {
				if err := enforcer.SavePolicy(); err != nil {
					return fmt.Errorf("failed to save policies to %s: %w", acfg.PolicyPath, err)
				}
				slog.Info("policies written", "path", acfg.PolicyPath)
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}
