package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// OpenSQLite opens the collection store at storePath and brings its schema up
// to date. ":memory:" opens a throwaway store.
func OpenSQLite(storePath string) (*gorm.DB, error) {
	storePath = strings.TrimSpace(storePath)
	if storePath == "" {
		return nil, fmt.Errorf("open sqlite: empty store path")
	}
	if storePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	database, err := gorm.Open(sqlite.Open(storePath+"?"+sqlitePragmas), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer; a single connection keeps inserts from
	// tripping over each other and keeps ":memory:" a single database.
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := applyEmbeddedMigrations(database); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func CloseSQLite(database *gorm.DB) error {
	if database == nil {
		return nil
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
