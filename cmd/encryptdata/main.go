// Command encryptdata encrypts member rows that were stored before
// at-rest encryption was enabled. Safe to run multiple times: rows
// that are already encrypted are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/crypto"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/database"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
)

func main() {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()

	logger.Setup(*env)

	if err := run(*env); err != nil {
		slog.Error("Migración de cifrado fallida", "error", err)
		os.Exit(1)
	}
}

func run(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("conectar a la base de datos: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Error al cerrar la base de datos", "error", err)
		}
	}()

	codec := crypto.NewAESCodec(cfg.Crypto.EncryptionKey)
	repo := member.NewMemberRepository(codec)

	migrated, err := repo.EncryptLegacyRows(context.Background(), db.DB)
	if err != nil {
		return err
	}

	slog.Info("Migración de cifrado completada", "migrated", migrated)
	return nil
}
