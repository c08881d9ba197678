package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"pulsefit/internal/infrastructure/config"
	"pulsefit/internal/infrastructure/database"
	"pulsefit/internal/infrastructure/migration"
	"pulsefit/internal/infrastructure/repository"
	"pulsefit/internal/shared/logger"
)

var (
	env      string
	seedPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run database migrations, check migration status, and seed the plan catalog.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the plan catalog from a YAML file",
		Long:  `Load plans from a YAML catalog file. Plans that already exist (by name) are skipped.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVar(&seedPath, "file", "./configs/plans.yaml", "Path to the plan catalog file")

	return cmd
}

func setup() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if _, err := database.Connect(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	return migration.NewManager(env).Migrate(database.Get())
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	sqlDB, err := database.Get().DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
	return goose.Status(sqlDB, scriptsPath)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	log := logger.NewLogger()
	planRepo := repository.NewPlanRepository(database.Get(), log)

	return migration.SeedPlans(cmd.Context(), seedPath, planRepo, log)
}
