package archive

import (
	"fmt"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/vault"
)

const testVaultKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&Provider{}, &APIKey{}, &Project{}, &ImportJob{},
		&Conversation{}, &ConversationProject{}, &Message{}, &Artifact{},
		&ConversationEdit{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testVault(t *testing.T) *vault.Vault {
	t.Helper()
	v, err := vault.New(testVaultKey)
	if err != nil {
		t.Fatalf("vault: %v", err)
	}
	return v
}
