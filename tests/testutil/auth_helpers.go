package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

// IssueToken signs a token for the given principal using the test secret
func IssueToken(t *testing.T, id uint, userType string) string {
	t.Helper()

	token, err := services.NewTokenService(config.GetConfig()).Issue(id, userType)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestUser inserts a customer with a bcrypt password and returns it
// along with a valid bearer token
func CreateTestUser(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "customer",
		CartData:     models.CartData{},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user, IssueToken(t, user.ID, services.PrincipalUser)
}

// CreateTestDesigner inserts a designer and returns it with a valid token
func CreateTestDesigner(t *testing.T, db *gorm.DB, email string) (models.Designer, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	designer := models.Designer{
		Name:         "Test Designer",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&designer).Error; err != nil {
		t.Fatalf("Failed to create test designer: %v", err)
	}

	return designer, IssueToken(t, designer.ID, services.PrincipalDesigner)
}

// SetPrincipal places an authenticated principal into the Gin context,
// bypassing the middleware for handler-level tests
func SetPrincipal(c *gin.Context, id uint, userType string) {
	c.Set("principal_id", id)
	c.Set("principal_type", userType)
}
