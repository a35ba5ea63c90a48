package database

import (
	"fmt"
	"log"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/config"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune Open. The zero value logs warnings only.
type Options struct {
	Logger logger.Interface
}

// Connect opens the configured store and migrates the two tables.
func Connect(cfg config.Database) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return Open(cfg.Driver, dsn, Options{})
}

// Open connects with the given driver and DSN. TranslateError is on so that
// constraint violations surface as gorm.ErrDuplicatedKey and friends.
func Open(driver, dsn string, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Logger != nil {
		gormCfg.Logger = opts.Logger
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Bottle{}, &models.Message{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Printf("[db] connected driver=%s", driver)
	return db, nil
}
