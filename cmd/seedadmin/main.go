// cmd/seedadmin/main.go — Crea/actualiza el administrador inicial.
// Uso: go run ./cmd/seedadmin
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdminPass), infra.BcryptCost)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer func() { _ = infra.CloseDatabase(db) }()

	if err := infra.EnsureReady(db, cfg); err != nil {
		log.Fatalf("schema error: %v", err)
	}

	// Unlike first-boot seeding this is a forced reset: the password hash is
	// rewritten even when the account already exists.
	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO users (username, nombre, apellido, sucursal, password_hash, rol, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = excluded.password_hash,
		    nombre = excluded.nombre,
		    apellido = excluded.apellido,
		    sucursal = excluded.sucursal,
		    rol = excluded.rol
	`, cfg.InitialAdminUser, cfg.InitialAdminName, cfg.InitialAdminSurname,
		cfg.InitialAdminBranch, string(hash), cfg.InitialAdminRole)

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("Usuario '%s' creado/actualizado\n", cfg.InitialAdminUser)
}
