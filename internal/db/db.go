package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
)

// Connect opens the archive database. driver is "mysql" or "sqlite".
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "mysql":
		dial = mysql.Open(dsn)
	case "", "sqlite":
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates the archive schema.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&archive.Provider{},
		&archive.APIKey{},
		&archive.Project{},
		&archive.ImportJob{},
		&archive.Conversation{},
		&archive.ConversationProject{},
		&archive.Message{},
		&archive.Artifact{},
		&archive.ConversationEdit{},
	)
}
