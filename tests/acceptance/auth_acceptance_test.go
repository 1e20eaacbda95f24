package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stitch-n-style/stitch-n-style-api/controllers"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"github.com/stitch-n-style/stitch-n-style-api/tests/testutil"
)

// AuthAcceptanceTestSuite drives the token workflow end to end over a real
// HTTP server: register, log in, then use the issued token on a protected
// route.
type AuthAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
}

func (suite *AuthAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.db = testutil.SetupTestDB(suite.T())

	router := gin.New()
	router.Use(gin.Recovery())

	user := router.Group("/api/user")
	{
		user.POST("/register", controllers.RegisterUser)
		user.POST("/login", controllers.LoginUser)
	}
	cart := router.Group("/api/cart", middleware.AuthUser())
	{
		cart.GET("/get", controllers.GetCart)
	}

	suite.server = httptest.NewServer(router)
}

func (suite *AuthAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
}

func (suite *AuthAcceptanceTestSuite) request(method, path, authHeader string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	suite.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)
	return resp
}

func (suite *AuthAcceptanceTestSuite) parse(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	suite.NoError(err)

	var parsed map[string]interface{}
	suite.NoError(json.Unmarshal(body, &parsed))
	return parsed
}

// TestRegisterLoginAccessWorkflow walks the whole happy path
func (suite *AuthAcceptanceTestSuite) TestRegisterLoginAccessWorkflow() {
	t := suite.T()

	resp := suite.request(http.MethodPost, "/api/user/register", "", gin.H{
		"name":     "Asha Rao",
		"email":    "asha@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := suite.parse(resp)
	registerToken, _ := registered["token"].(string)
	assert.NotEmpty(t, registerToken)

	resp = suite.request(http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := suite.parse(resp)
	loginToken, _ := loggedIn["token"].(string)
	assert.NotEmpty(t, loginToken)

	resp = suite.request(http.MethodGet, "/api/cart/get", "Bearer "+loginToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cart := suite.parse(resp)
	assert.Equal(t, true, cart["success"])
}

// TestProtectedEndpointRejections covers the ways a request can fail auth
func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointRejections() {
	suite.T().Run("without a token", func(t *testing.T) {
		resp := suite.request(http.MethodGet, "/api/cart/get", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		parsed := suite.parse(resp)
		assert.Equal(t, false, parsed["success"])
		assert.NotEmpty(t, parsed["message"])
	})

	suite.T().Run("with a garbage token", func(t *testing.T) {
		resp := suite.request(http.MethodGet, "/api/cart/get", "Bearer invalid-token", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	suite.T().Run("with a malformed header", func(t *testing.T) {
		resp := suite.request(http.MethodGet, "/api/cart/get", "InvalidFormat token", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	suite.T().Run("with a designer token on a customer route", func(t *testing.T) {
		token := testutil.IssueToken(t, 99, services.PrincipalDesigner)
		resp := suite.request(http.MethodGet, "/api/cart/get", "Bearer "+token, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

// TestErrorResponseFormat validates the error envelope every handler uses
func (suite *AuthAcceptanceTestSuite) TestErrorResponseFormat() {
	resp := suite.request(http.MethodGet, "/api/cart/get", "", nil)
	parsed := suite.parse(resp)

	assert.Contains(suite.T(), parsed, "success")
	assert.Equal(suite.T(), false, parsed["success"])
	assert.Contains(suite.T(), parsed, "message")
	assert.IsType(suite.T(), "", parsed["message"])
	assert.NotEmpty(suite.T(), parsed["message"])
}

// TestContentTypeHeaders validates that responses are JSON across outcomes
func (suite *AuthAcceptanceTestSuite) TestContentTypeHeaders() {
	testCases := []struct {
		name string
		auth string
	}{
		{"without auth", ""},
		{"with invalid auth", "Bearer invalid"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			resp := suite.request(http.MethodGet, "/api/cart/get", tc.auth, nil)
			defer resp.Body.Close()
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
		})
	}
}

func TestAuthAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthAcceptanceTestSuite))
}
