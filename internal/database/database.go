package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/knowledge-share-api/internal/config"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/models"
)

var DB *gorm.DB

// Dialector picks the GORM dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite, "":
		return sqlite.Open(cfg.DBPath), nil
	case config.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func Connect(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(!cfg.IsRelease()),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Info().Str("driver", cfg.DBDriver).Msg("database connection established")
	return nil
}

// Models lists every table owned by the service.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.KnowledgeItem{},
		&models.ValidationRecord{},
	}
}

func Migrate() error {
	logging.Info().Msg("running database migrations")
	if err := DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(DB); err != nil {
		return err
	}
	logging.Info().Msg("database migrations completed")
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
