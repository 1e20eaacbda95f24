package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

// AuthIntegrationTestSuite exercises the token service and the auth
// middleware together: tokens issued by one are accepted or refused by the
// other according to principal type.
type AuthIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	tokens *services.TokenService
}

func (suite *AuthIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "integration-secret"}
	config.SetConfig(cfg)
	suite.tokens = services.NewTokenService(cfg)
}

func (suite *AuthIntegrationTestSuite) SetupTest() {
	suite.router = gin.New()

	suite.router.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Public endpoint"})
	})

	echoPrincipal := func(c *gin.Context) {
		id, err := middleware.GetPrincipalID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
	}

	suite.router.GET("/customer", middleware.AuthUser(), echoPrincipal)
	suite.router.GET("/designer", middleware.AuthDesigner(), echoPrincipal)
	suite.router.GET("/admin", middleware.AuthAdmin(), echoPrincipal)
}

func (suite *AuthIntegrationTestSuite) get(path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthIntegrationTestSuite) TestPublicEndpoint() {
	w := suite.get("/public", "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestPrincipalTypeMatrix issues a token per principal type and checks it
// against every role-guarded route.
func (suite *AuthIntegrationTestSuite) TestPrincipalTypeMatrix() {
	routes := []string{"/customer", "/designer", "/admin"}
	principals := map[string]string{
		"/customer": services.PrincipalUser,
		"/designer": services.PrincipalDesigner,
		"/admin":    services.PrincipalAdmin,
	}

	for _, issuedFor := range routes {
		token, err := suite.tokens.Issue(7, principals[issuedFor])
		suite.NoError(err)

		for _, route := range routes {
			name := principals[issuedFor] + " token on " + route
			suite.T().Run(name, func(t *testing.T) {
				w := suite.get(route, "Bearer "+token)
				if route == issuedFor {
					assert.Equal(t, http.StatusOK, w.Code)

					var response map[string]interface{}
					assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
					assert.Equal(t, float64(7), response["id"])
				} else {
					assert.Equal(t, http.StatusForbidden, w.Code)
				}
			})
		}
	}
}

func (suite *AuthIntegrationTestSuite) TestTokenFromRotatedSecretIsRejected() {
	oldService := services.NewTokenService(&config.Config{JWTSecret: "previous-secret"})
	token, err := oldService.Issue(7, services.PrincipalUser)
	suite.NoError(err)

	w := suite.get("/customer", "Bearer "+token)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthIntegrationTestSuite) TestMalformedAuthHeaders() {
	testCases := []struct {
		name   string
		header string
	}{
		{"Missing Bearer prefix", "token-without-bearer"},
		{"Wrong prefix", "Basic token"},
		{"Empty token", "Bearer "},
		{"Only Bearer", "Bearer"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			w := suite.get("/customer", tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func (suite *AuthIntegrationTestSuite) TestErrorResponseFormat() {
	w := suite.get("/customer", "")

	var response map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response, "success")
	assert.False(suite.T(), response["success"].(bool))
	assert.Contains(suite.T(), response, "message")
	assert.NotEmpty(suite.T(), response["message"])
}

func TestAuthIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthIntegrationTestSuite))
}
