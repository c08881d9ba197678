package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"pulsefit/internal/infrastructure/persistence/models"
	"pulsefit/internal/shared/logger"
)

// Manager picks and runs a migration strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager chooses the strategy for the given environment: auto-migrate in
// development, versioned goose scripts everywhere else.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "debug", "development", "dev":
		strategy = NewGormAutoMigrateStrategy()
	default:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGooseStrategy(scriptsPath)
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate runs the configured strategy over the full model set.
func (m *Manager) Migrate(db *gorm.DB) error {
	migrateModels := AutoMigrateModels()

	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(migrateModels),
	)

	if err := m.strategy.Migrate(db, migrateModels...); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

// AutoMigrateModels lists every persisted model in creation order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PlanModel{},
		&models.MemberModel{},
		&models.PaymentModel{},
	}
}
