package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/21501a05b6/Magnova/internal/domain/identity"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/config"
	"github.com/21501a05b6/Magnova/internal/infrastructure/logger"
	"github.com/21501a05b6/Magnova/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel      string
		seedAdmin     bool
		adminEmail    string
		adminPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seedAdmin, "seed-admin", false, "Create an initial admin account after migrating")
	flag.StringVar(&adminEmail, "admin-email", "admin@magnova.local", "Email for the seeded admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin account")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration", zap.String("database", cfg.Database.DBName))
	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration complete")

	if seedAdmin {
		if adminPassword == "" {
			log.Fatal("Seeding the admin account requires -admin-password")
		}
		if err := seedAdminUser(db, adminEmail, adminPassword); err != nil {
			log.Fatal("Failed to seed admin account", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("email", adminEmail))
	}
}

func seedAdminUser(db *persistence.Database, email, password string) error {
	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		// Already seeded; migration reruns should not touch the account.
		return nil
	} else if !shared.IsNotFound(err) {
		return err
	}

	admin, err := identity.NewUser(email, password, "Administrator")
	if err != nil {
		return err
	}
	return userRepo.Save(ctx, admin)
}
