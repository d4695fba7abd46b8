package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureDefaultAdmin creates the configured operator account when the users
// table is empty. Skipped when no admin password is configured; there is no
// built-in default password.
func EnsureDefaultAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		slog.Info("ADMIN_PASSWORD no configurado, se omite la creación del administrador")
		return nil
	}

	repo := NewUserRepository()

	count, err := repo.Count(ctx, db)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &model.User{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := repo.Create(ctx, db, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("Administrador por defecto creado", "username", cfg.Admin.Username)
	return nil
}
