package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// TestConfig returns a configuration suitable for tests. The JWT secret is
// fixed so tokens issued by helpers verify against it.
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:       "sqlite::memory:",
		Port:              "4000",
		GoEnv:             "test",
		JWTSecret:         "test-jwt-secret",
		AdminEmail:        "admin@stitchnstyle.test",
		AdminPassword:     "admin-password-123",
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "rzp_test_secret",
		StripeSecretKey:   "sk_test_key",
		FrontendOrigin:    "http://localhost:5173",
	}
}

// SetupTestDB opens an in-memory SQLite database, migrates all models and
// installs it as the active connection. Each call gets a fresh database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Designer{},
		&models.Product{},
		&models.Design{},
		&models.Order{},
		&models.CustomOrder{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(TestConfig())
	return db
}
