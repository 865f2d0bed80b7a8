package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

var defaultTags = []string{
	importers.ArchetypeTag,
	importers.PluginTag,
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite deck list at dbPath, migrates it and seeds
// the import tags. log may be nil.
func NewDatabase(dbPath string, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Deck{},
		&entities.Card{},
		&entities.Tag{},
		&entities.ImportRun{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedTags(log); err != nil {
		return nil, fmt.Errorf("failed to seed tags: %w", err)
	}

	log.Info("database initialized", zap.String("path", dbPath))

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the underlying connection.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) seedTags(log *zap.Logger) error {
	for _, name := range defaultTags {
		tag := entities.Tag{Name: name}
		result := d.DB.Where(entities.Tag{Name: name}).FirstOrCreate(&tag)
		if result.Error != nil {
			return fmt.Errorf("failed to create tag %s: %w", name, result.Error)
		}
		if result.RowsAffected > 0 {
			log.Info("created tag", zap.String("tag", name))
		}
	}
	return nil
}
