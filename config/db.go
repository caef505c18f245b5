package config

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/models"
)

// ConnectDB opens the postgres connection and prepares the schema.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables and the search index. Also called by tests
// against their own database handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Review{}); err != nil {
		return errors.Wrap(err, "auto migration failed")
	}

	// Compound index backing the title/ingredients search.
	err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_recipes_search ON recipes (title, ingredients)",
	).Error
	return errors.Wrap(err, "failed to create search index")
}
