package controller

import (
	"carwash/auth"
	"carwash/repository"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, permissions ...repository.Permission) string {
	t.Helper()
	user := &repository.User{ID: 42, Permissions: pq.StringArray{}}
	for _, permission := range permissions {
		user.Permissions = append(user.Permissions, string(permission))
	}
	token, err := auth.CreateToken(user)
	require.NoError(t, err)
	return token
}

func protectedEngine(roles ...repository.Permission) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(roles), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": getClaims(c).UserId})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	warehouseToken := tokenFor(t, repository.PermissionWarehouse)
	financeToken := tokenFor(t, repository.PermissionFinance)
	adminToken := tokenFor(t, repository.PermissionAdmin)

	tests := []struct {
		name    string
		prepare func(req *http.Request)
		status  int
	}{
		{name: "no token", prepare: func(req *http.Request) {}, status: 401},
		{name: "garbage token", prepare: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth", Value: "not-a-jwt"})
		}, status: 401},
		{name: "missing permission", prepare: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth", Value: financeToken})
		}, status: 403},
		{name: "cookie", prepare: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth", Value: warehouseToken})
		}, status: 200},
		{name: "bearer header", prepare: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+warehouseToken)
		}, status: 200},
		{name: "query parameter", prepare: func(req *http.Request) {
			q := req.URL.Query()
			q.Set("token", warehouseToken)
			req.URL.RawQuery = q.Encode()
		}, status: 200},
		{name: "admin passes role checks", prepare: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth", Value: adminToken})
		}, status: 200},
	}

	r := protectedEngine(repository.PermissionWarehouse)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAuthMiddlewareWithoutRoles(t *testing.T) {
	r := protectedEngine()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: tokenFor(t)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}
