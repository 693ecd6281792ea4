// Package main is the entry point for the junkshop background worker.
// It consumes the database change feed and refreshes item goal progress.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"junkshop/internal/config"
	"junkshop/internal/domain/progress"
	"junkshop/internal/domain/registers/processed"
	"junkshop/internal/infrastructure/storage/postgres"
	"junkshop/internal/infrastructure/storage/postgres/catalog_repo"
	"junkshop/internal/infrastructure/storage/postgres/register_repo"
	"junkshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting junkshop worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	goalRepo := catalog_repo.NewItemGoalRepo(txManager)
	registerService := processed.NewService(register_repo.NewProcessedRepo(txManager))

	refresher := NewProgressRefresher(goalRepo, registerService, log)
	feed := postgres.NewChangeFeed(pool, cfg.ChangeFeedChannel, refresher.Handle)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			log.Errorw("change feed stopped", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// ProgressRefresher recomputes an item's goal progress whenever register
// records or the goal itself change. Recomputation reads the authoritative
// sums from the register, so handling the same notification twice is
// harmless.
type ProgressRefresher struct {
	goals    *catalog_repo.ItemGoalRepo
	register *processed.Service
	log      *logger.Logger
}

func NewProgressRefresher(goals *catalog_repo.ItemGoalRepo, register *processed.Service, log *logger.Logger) *ProgressRefresher {
	return &ProgressRefresher{
		goals:    goals,
		register: register,
		log:      log.WithComponent("progress-refresher"),
	}
}

// Handle processes one change feed event.
func (r *ProgressRefresher) Handle(ctx context.Context, ev postgres.ChangeEvent) {
	switch ev.Table {
	case "reg_processed_items", "item_goals":
	default:
		return
	}
	if ev.Item == "" || ev.OrganizationID == "" {
		r.log.Debugw("skipping event without item scope", "table", ev.Table, "op", ev.Op)
		return
	}

	goal, err := r.goals.GetByKey(ctx, ev.Item, ev.Branch, ev.OrganizationID)
	if err != nil {
		// Register records for untracked items are fine; nothing to refresh.
		r.log.Debugw("no goal for changed item",
			"item", ev.Item, "branch", ev.Branch, "error", err)
		return
	}

	total, err := r.register.TotalFor(ctx, processed.Key{
		Item:           goal.Item(),
		Branch:         goal.Branch,
		OrganizationID: goal.OrganizationID,
	})
	if err != nil {
		r.log.Errorw("failed to total register records",
			"item", goal.Item(), "branch", goal.Branch, "error", err)
		return
	}

	ind := progress.Compute(total.Quantity, goal.GoalQuantity, progress.DefaultSegments)
	r.log.Infow("item goal progress refreshed",
		"item", goal.Item(),
		"branch", goal.Branch,
		"processed", total.Display(),
		"goal", goal.GoalQuantity.Display(),
		"percentage", ind.Percentage,
		"filled_segments", ind.FilledSegments,
	)
}
