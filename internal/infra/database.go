package infra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BcryptCost is the fixed cost factor shared by the first-boot seeder and
// credential verification. Hashes written at one cost verify at any cost,
// but keeping a single constant makes seeded and created users uniform.
const BcryptCost = 10

// NewDatabase opens the single SQLite session for the process, creates the
// data directory if needed, and applies the journaling pragmas. WAL mode is
// required so readers are not blocked while a payment is being written.
// The returned *gorm.DB is injected into every repository; its lifecycle is
// open → EnsureReady → serve → Close, owned by the caller.
func NewDatabase(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Single file store — a lone writer plus WAL readers need no pool.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// EnsureReady applies the schema and seeds the default administrator.
// Safe to call repeatedly: table/index creation uses IF NOT EXISTS semantics
// and the seed is guarded by a username lookup plus the unique index.
// Any failure here is fatal to startup — the caller must abort.
func EnsureReady(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(&model.User{}, &model.Payment{}); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := seedInitialAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// seedInitialAdmin creates the configured default administrator exactly once.
// If two processes race past the existence check, the unique index on
// username rejects the loser; that outcome counts as already seeded.
func seedInitialAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing model.User
	err := db.Where("username = ?", cfg.InitialAdminUser).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdminPass), BcryptCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:     cfg.InitialAdminUser,
		Nombre:       cfg.InitialAdminName,
		Apellido:     cfg.InitialAdminSurname,
		Sucursal:     cfg.InitialAdminBranch,
		PasswordHash: string(hash),
		Rol:          cfg.InitialAdminRole,
	}
	if err := db.Create(admin).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil
		}
		return err
	}
	log.Info().Str("username", cfg.InitialAdminUser).Msg("usuario inicial creado")
	return nil
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// gorm's sqlite driver surfaces these as sqlite3.ErrConstraintUnique wrapped
// in plain errors, so the check falls back to message sniffing.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Checkpoint flushes the WAL into the main database file. Called on
// shutdown so the .sqlite file alone is a complete backup artifact.
func Checkpoint(db *gorm.DB) error {
	return db.Exec("PRAGMA wal_checkpoint(TRUNCATE);").Error
}

// CloseDatabase checkpoints and closes the underlying connection.
func CloseDatabase(db *gorm.DB) error {
	if err := Checkpoint(db); err != nil {
		log.Warn().Err(err).Msg("wal checkpoint failed on close")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
