package database

import (
	"fmt"
	"strings"
	"time"

	"gear4music/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database, retrying while the server comes up, and
// migrates the schema.
func Open(driver, dsn string, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		// unique index violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	var db *gorm.DB
	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.Warnf("failed to connect to DB: %v", err)
		if i < maxAttempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	if driver == DriverSQLite {
		// one connection: sqlite has a single writer and the pragma is per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Instrument{},
		&models.User{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return backfillSearchNames(db)
}

// backfillSearchNames fills search_name for rows written before the column existed.
func backfillSearchNames(db *gorm.DB) error {
	var stale []models.Instrument
	if err := db.Select("id", "name").Where("search_name = ''").Find(&stale).Error; err != nil {
		return fmt.Errorf("backfill search names: %w", err)
	}
	for _, inst := range stale {
		err := db.Model(&models.Instrument{}).
			Where("id = ?", inst.ID).
			Update("search_name", searchKey(inst.Name)).Error
		if err != nil {
			return fmt.Errorf("backfill search name for instrument %d: %w", inst.ID, err)
		}
	}
	return nil
}
