// Command reset-password sets a new password for an existing user and
// revokes the user's current session.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go-inventory-catalog/internal/config"
	"go-inventory-catalog/internal/logging"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/repository"
	"go-inventory-catalog/pkg/database"

	"github.com/google/uuid"
)

func main() {
	email := flag.String("email", "admin@example.com", "email of the user to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := logging.New(cfg.Log)

	if err := reset(context.Background(), cfg.Database, *email, *password); err != nil {
		log.Error("reset password", slog.String("email", *email), slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("password reset", slog.String("email", *email))
}

func reset(ctx context.Context, dbCfg database.Config, email, password string) error {
	db, err := database.ConnectDB(dbCfg)
	if err != nil {
		return err
	}
	users := repository.NewUserRepo(db)

	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	var tmp model.User
	if err := tmp.SetPassword(password); err != nil {
		return err
	}
	if err := users.UpdatePassword(ctx, user.ID, tmp.Password); err != nil {
		return err
	}
	// Tokens issued before the reset stop validating.
	return users.UpdateTokenVersion(ctx, user.ID, uuid.NewString())
}
