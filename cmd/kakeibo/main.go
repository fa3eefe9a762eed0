package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"kakeibo/internal/config"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp})
	log.SetDefault(logger)

	logger.Info("Starting kakeibo", log.FieldOperation, log.OpStartup)

	store := ledger.New(ledger.Config{
		SessionTTL:        cfg.Session.TTL,
		SessionMaxEntries: cfg.Session.MaxEntries,
		Logger:            logger,
	})
	defer store.Close()

	if err := run(context.Background(), logger, store); err != nil {
		logger.Error("Demo run failed", log.FieldError, err)
		os.Exit(1)
	}
}

// run walks the seeded demo account through a month of bookkeeping and logs
// what the summary queries make of it.
func run(ctx context.Context, logger *log.Logger, store *ledger.Store) error {
	demo, ok := store.GetUserByUsername(ctx, "demo")
	if !ok {
		return errors.New("demo user missing from seeded store")
	}

	sess := store.Sessions().Create([]byte(demo.Username))
	logger.Info("Demo session opened", log.FieldUserID, demo.ID)

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	samples := []struct {
		amount   string
		category core.Category
		day      int
		desc     string
	}{
		{"42.50", core.CategoryFood, 2, "weekly groceries"},
		{"15.00", core.CategoryTransport, 3, "metro pass"},
		{"89.99", core.CategoryEntertainment, 5, "concert ticket"},
		{"120.00", core.CategoryUtilities, 7, "electricity bill"},
	}
	for _, sample := range samples {
		amount, err := core.ParseAmount(sample.amount)
		if err != nil {
			return fmt.Errorf("parse sample amount %q: %w", sample.amount, err)
		}
		store.CreateExpense(ctx, demo.ID, ledger.ExpenseParams{
			Amount:      amount,
			Category:    sample.category,
			Date:        time.Date(year, time.Month(month), sample.day, 0, 0, 0, 0, time.UTC),
			Description: sample.desc,
		})
	}

	// A mistyped entry, caught and removed right away
	typoAmount, err := core.ParseAmount("999.99")
	if err != nil {
		return fmt.Errorf("parse typo amount: %w", err)
	}
	typo := store.CreateExpense(ctx, demo.ID, ledger.ExpenseParams{
		Amount:      typoAmount,
		Category:    core.CategoryOther,
		Date:        time.Date(year, time.Month(month), 8, 0, 0, 0, 0, time.UTC),
		Description: "fat fingered, remove me",
	})
	if !store.DeleteExpense(ctx, typo.ID) {
		return errors.New("typo expense was not removed")
	}

	summary := store.GetMonthlyExpenseSummary(ctx, demo.ID, month, year)
	logger.Info("Month so far",
		log.FieldMonth, month,
		log.FieldYear, year,
		"total_spent", summary.TotalSpent.String(),
		"budget", summary.Budget.String(),
		"remaining", summary.BudgetRemaining.String(),
		"used_pct", summary.BudgetPercentage)

	for _, c := range summary.Categories {
		logger.Info("Category share",
			log.FieldCategory, c.Category.String(),
			log.FieldAmount, c.Total.String(),
			"share_pct", c.Percentage)
	}

	trend := store.GetMonthlyTotalsByCategory(ctx, demo.ID, core.CategoryFood, 3)
	for _, point := range trend {
		logger.Info("Food spending",
			log.FieldMonth, point.Month,
			log.FieldYear, point.Year,
			log.FieldAmount, point.Total.String())
	}

	recent := store.ListExpensesByUser(ctx, demo.ID, 3)
	for _, e := range recent {
		logger.Info("Recent expense",
			log.FieldExpenseID, e.ID,
			log.FieldCategory, e.Category.String(),
			log.FieldAmount, e.Amount.String(),
			"description", e.Description)
	}

	if !store.Sessions().Renew(sess.Token) {
		return errors.New("demo session vanished")
	}
	store.Sessions().Delete(sess.Token)

	logger.Info("Demo complete", log.FieldOperation, log.OpShutdown)
	return nil
}
