package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"laptop-ledger/internal/auth"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T) (*gin.Engine, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.GET("/private", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r, tokens
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens := newRouter(t)
	good, _ := tokens.GenerateToken("u-1", "admin")

	tests := []struct {
		name     string
		prepare  func(req *http.Request)
		wantCode int
	}{
		{"no token", func(req *http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: good})
		}, http.StatusOK},
		{"bearer header", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+good)
		}, http.StatusOK},
		{"header without bearer", func(req *http.Request) {
			req.Header.Set("Authorization", good)
		}, http.StatusUnauthorized},
		{"bad cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "junk"})
		}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode == http.StatusOK && w.Body.String() != "u-1" {
				t.Errorf("user id = %q, want u-1", w.Body.String())
			}
		})
	}
}
