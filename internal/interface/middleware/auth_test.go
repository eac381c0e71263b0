package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
	"github.com/oksasatya/go-ddd-course-admin/pkg/response"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func buildTestEngine(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(nil))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

	auth := r.Group("/", middleware.Authenticate(jwt))
	auth.GET("/admin", middleware.RequireRoles(vo.RoleAdmin), ok)
	auth.GET("/staff", middleware.RequireRoles(vo.RoleAdmin, vo.RoleEditor), ok)
	auth.GET("/users/:id", middleware.RequireSelfOrRoles("id", vo.RoleAdmin), ok)
	return r
}

func tokenFor(t *testing.T, jwt *helpers.JWTManager, uid string, role vo.Role) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(uid, "someone", role.String())
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_RejectsMissingOrBadToken(t *testing.T) {
	jwt := newJWT()
	r := buildTestEngine(jwt)

	other := helpers.NewJWTManager("other-secret", "x", time.Minute, time.Hour)
	foreign, _, err := other.GenerateAccessToken(testUserID, "x", "admin")
	require.NoError(t, err)
	refresh, _, err := jwt.GenerateRefreshToken(testUserID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage", "Bearer not-a-jwt"},
		{"foreign secret", "Bearer " + foreign},
		{"refresh token as access", "Bearer " + refresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/admin", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body response.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body.Code)
			assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expired := helpers.NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	r := buildTestEngine(newJWT())

	w := do(r, "/admin", tokenFor(t, expired, testUserID, vo.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	jwt := newJWT()
	r := buildTestEngine(jwt)

	tests := []struct {
		path string
		role vo.Role
		want int
	}{
		{"/admin", vo.RoleAdmin, http.StatusOK},
		{"/admin", vo.RoleEditor, http.StatusForbidden},
		{"/admin", vo.RoleUser, http.StatusForbidden},
		{"/staff", vo.RoleEditor, http.StatusOK},
		{"/staff", vo.RoleUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.role.String(), func(t *testing.T) {
			w := do(r, tt.path, tokenFor(t, jwt, testUserID, tt.role))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireSelfOrRoles(t *testing.T) {
	jwt := newJWT()
	r := buildTestEngine(jwt)

	assert.Equal(t, http.StatusOK, do(r, "/users/"+testUserID, tokenFor(t, jwt, testUserID, vo.RoleUser)).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/users/someone-else", tokenFor(t, jwt, testUserID, vo.RoleUser)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/users/someone-else", tokenFor(t, jwt, testUserID, vo.RoleAdmin)).Code)
}

func TestPredicates(t *testing.T) {
	assert.True(t, middleware.HasRole("admin", vo.RoleAdmin, vo.RoleEditor))
	assert.False(t, middleware.HasRole("user", vo.RoleAdmin, vo.RoleEditor))
	assert.False(t, middleware.HasRole("admin"))

	id := middleware.Identity{UserID: "u1", Role: "user"}
	assert.True(t, middleware.IsSelf(id, "u1"))
	assert.False(t, middleware.IsSelf(id, "u2"))
	assert.False(t, middleware.IsSelf(middleware.Identity{}, ""))
}
