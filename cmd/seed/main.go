package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/database"
	"github.com/xavierca1/lead-intake/internal/infra/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.DatabaseDriver == config.DriverMemory {
		return errors.New("nothing to seed: DATABASE_DRIVER is memory")
	}

	dialect, err := database.DialectFor(cfg.DatabaseDriver)
	if err != nil {
		return err
	}

	db, err := database.NewDBConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}

	repo := database.NewLeadRepository(db, dialect, log)
	n, err := seed(ctx, repo)
	if err != nil {
		return err
	}
	log.Info("seed complete", "inserted", n)
	return nil
}

// seed inserts the sample leads unless the store already holds any.
func seed(ctx context.Context, repo entity.LeadRepositoryInterface) (int, error) {
	for _, st := range entity.AllStatuses() {
		existing, err := repo.FindByStatus(ctx, st)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	inserted := 0
	for _, lead := range sampleLeads() {
		if err := repo.Create(ctx, lead); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func sampleLeads() []*entity.Lead {
	jobID := func(v int64) *int64 { return &v }

	john := entity.NewLead("John", "Doe", "Sydney", "Plumbing", "Fix leaking pipe", decimal.NewFromInt(400), "john@example.com", "0412345678", jobID(1001))
	jane := entity.NewLead("Jane", "Smith", "Melbourne", "Electrical", "Install lights", decimal.NewFromInt(600), "jane@example.com", "0423456789", jobID(1002))
	bob := entity.NewLead("Bob", "Brown", "Brisbane", "Carpentry", "Build deck", decimal.NewFromInt(300), "bob@example.com", "0434567890", jobID(1003))
	bob.Status = entity.StatusAccepted
	alice := entity.NewLead("Alice", "Johnson", "Perth", "Painting", "Paint house", decimal.NewFromInt(500), "alice@example.com", "0445678901", nil)
	alice.Status = entity.StatusDeclined

	return []*entity.Lead{john, jane, bob, alice}
}
