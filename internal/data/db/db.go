package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/domain"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

// Open connects to the audit database and migrates its schema.
func Open(cfg config.AuditConfig, logg *logger.Logger) (*gorm.DB, error) {
	serviceLog := logg.With("service", "AuditDB", "driver", cfg.Driver)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported audit driver %q", cfg.Driver)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connect audit db: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	serviceLog.Info("audit database ready")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.GenerationAudit{}); err != nil {
		return fmt.Errorf("auto-migrate audit schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
