package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"github.com/stitch-n-style/stitch-n-style-api/tests/testutil"
)

// setupControllerTest installs a fresh in-memory database, test config and
// mock services, returning the database and the mock payment gateway
func setupControllerTest(t *testing.T) (*gorm.DB, *services.MockRazorpayService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)

	gateway := services.NewMockRazorpayService("test-secret")
	gateway.SetAsMockForTesting()
	services.NewMockImageService().SetAsMockForTesting()
	services.NewMockStripeService().SetAsMockForTesting()

	return db, gateway
}

// asPrincipal injects an authenticated principal, standing in for the auth
// middleware in handler tests
func asPrincipal(id uint, userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextPrincipalID, id)
		c.Set(middleware.ContextPrincipalType, userType)
		c.Next()
	}
}

// jsonRequest performs a request with a JSON body against the router
func jsonRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse unmarshals a JSON response body
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Response should be valid JSON")
	return resp
}

// multipartBody builds a multipart form with string fields and PNG files
func multipartBody(t *testing.T, fields map[string]string, fileField string, filenames []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, name := range filenames {
		part, err := writer.CreatePart(imagePartHeader(fileField, name))
		require.NoError(t, err)
		part.Write([]byte("fake image bytes"))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// imagePartHeader builds a multipart header carrying an image content type,
// the way browsers submit file inputs
func imagePartHeader(fieldName, filename string) textproto.MIMEHeader {
	contentType := "image/png"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".webp":
		contentType = "image/webp"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filename))
	header.Set("Content-Type", contentType)
	return header
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "customer",
		CartData:     models.CartData{"1": {"M": 1}},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createDesigner(t *testing.T, db *gorm.DB, email string) models.Designer {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	designer := models.Designer{
		Name:         "Test Designer",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&designer).Error)
	return designer
}

func createCustomOrder(t *testing.T, db *gorm.DB, customerID uint, status string, mutate func(*models.CustomOrder)) models.CustomOrder {
	t.Helper()

	order := models.CustomOrder{
		CustomerID: customerID,
		Status:     status,
		Design:     models.DesignSpec{Style: "lehenga", Fabric: "silk"},
		Measurements: models.Measurements{
			Chest: 36, Waist: 30, Hips: 38, Length: 44, Shoulders: 16, Sleeves: 22,
		},
	}
	if mutate != nil {
		mutate(&order)
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
