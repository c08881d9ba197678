package migration

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pulsefit/internal/domain/plan"
	"pulsefit/internal/shared/logger"
)

type seedPlan struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationDays int    `yaml:"duration_days"`
	Price        string `yaml:"price"`
}

type seedFile struct {
	Plans []seedPlan `yaml:"plans"`
}

// SeedPlans loads the plan catalog from a YAML file. Existing plans (matched
// by name, case-insensitive) are left untouched so re-running the seed is
// safe.
func SeedPlans(ctx context.Context, path string, repo plan.PlanRepository, log logger.Interface) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	var created, skipped int
	for _, sp := range file.Plans {
		existing, err := repo.GetByName(ctx, sp.Name)
		if err != nil {
			return fmt.Errorf("failed to look up plan %q: %w", sp.Name, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return fmt.Errorf("invalid price for plan %q: %w", sp.Name, err)
		}

		p, err := plan.NewPlan(sp.Name, sp.Description, sp.DurationDays, price)
		if err != nil {
			return fmt.Errorf("invalid seed plan %q: %w", sp.Name, err)
		}
		if err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create plan %q: %w", sp.Name, err)
		}
		created++
	}

	log.Infow("plan catalog seeded", "created", created, "skipped", skipped, "path", path)
	return nil
}
