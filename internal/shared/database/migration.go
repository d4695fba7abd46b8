package database

import (
	"fmt"
	"log/slog"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"

	"gorm.io/gorm"
)

// Migrate executes database migration based on configuration. AutoMigrate is
// additive only (new tables, new columns, new indexes); it never drops data,
// so it is safe to leave enabled outside production.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("Migración automática desactivada",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Info("Ejecutando migración automática",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Orden de dependencias: payments referencia a members
	models := []interface{}{
		&model.User{},
		&model.Member{},
		&model.Payment{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrar %T: %w", m, err)
		}
		slog.Debug("Tabla sincronizada", "model", fmt.Sprintf("%T", m))
	}

	slog.Info("Migración completada")
	return nil
}
