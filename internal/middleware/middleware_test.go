package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/guard"
	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func customerToken(t *testing.T) string {
	return signed(t, testSecret, jwt.MapClaims{
		"sub":      7,
		"role":     models.RoleCustomer,
		"clientId": 3,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
}

func authEngine() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/me", func(c *gin.Context) {
		a, _ := ActorFrom(c)
		cid := uint(0)
		if a.ClientID != nil {
			cid = *a.ClientID
		}
		c.JSON(http.StatusOK, gin.H{"user": a.UserID, "role": a.Role, "client": cid})
	})
	r.GET("/staff", RequireRole(models.RoleOwner, models.RoleEmployee), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareBuildsActor(t *testing.T) {
	w := do(authEngine(), http.MethodGet, "/me", customerToken(t), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"client":3`) || !strings.Contains(w.Body.String(), `"user":7`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := authEngine()

	cases := map[string]string{
		"":              "missing_authorization_header",
		"garbage":       "invalid_token",
		signed(t, "other", jwt.MapClaims{"sub": 1, "role": "owner"}): "invalid_token",
		signed(t, testSecret, jwt.MapClaims{"sub": 1}):                "invalid_token_payload",
		signed(t, testSecret, jwt.MapClaims{
			"sub": 1, "role": "owner", "exp": time.Now().Add(-time.Hour).Unix(),
		}): "invalid_token",
	}

	for tok, code := range cases {
		w := do(r, http.MethodGet, "/me", tok, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d", tok, w.Code)
		}
		if !strings.Contains(w.Body.String(), code) {
			t.Errorf("token %q: expected %s in %s", tok, code, w.Body.String())
		}
	}
}

func TestRequireRole(t *testing.T) {
	r := authEngine()

	if w := do(r, http.MethodGet, "/staff", customerToken(t), ""); w.Code != http.StatusForbidden {
		t.Fatalf("customer on staff route: status = %d", w.Code)
	}

	staff := signed(t, testSecret, jwt.MapClaims{"sub": 1, "role": models.RoleEmployee})
	if w := do(r, http.MethodGet, "/staff", staff, ""); w.Code != http.StatusOK {
		t.Fatalf("employee on staff route: status = %d", w.Code)
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(4) // burst 1

	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := do(r, http.MethodGet, "/x", "", ""); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	w := do(r, http.MethodGet, "/x", "", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rate_limited") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func guardEngine(t *testing.T, status *int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.POST("/book", SubmitGuard(guard.NewSubmitGuard(client, time.Minute)), func(c *gin.Context) {
		c.Status(*status)
	})
	return r, mr
}

func TestSubmitGuardBlocksDuplicates(t *testing.T) {
	status := http.StatusCreated
	r, _ := guardEngine(t, &status)
	tok := customerToken(t)

	if w := do(r, http.MethodPost, "/book", tok, `{"pet_id":1}`); w.Code != http.StatusCreated {
		t.Fatalf("first submit: status = %d", w.Code)
	}

	w := do(r, http.MethodPost, "/book", tok, `{"pet_id":1}`)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "duplicate_submission") {
		t.Fatalf("duplicate submit: status = %d body=%s", w.Code, w.Body.String())
	}

	if w := do(r, http.MethodPost, "/book", tok, `{"pet_id":2}`); w.Code != http.StatusCreated {
		t.Fatalf("different body: status = %d", w.Code)
	}
}

func TestSubmitGuardReleasesOnFailure(t *testing.T) {
	status := http.StatusConflict
	r, _ := guardEngine(t, &status)
	tok := customerToken(t)

	do(r, http.MethodPost, "/book", tok, `{"pet_id":1}`)

	status = http.StatusCreated
	if w := do(r, http.MethodPost, "/book", tok, `{"pet_id":1}`); w.Code != http.StatusCreated {
		t.Fatalf("retry after failure: status = %d", w.Code)
	}
}

func TestSubmitGuardFailsOpenWhenRedisIsDown(t *testing.T) {
	status := http.StatusCreated
	r, mr := guardEngine(t, &status)
	tok := customerToken(t)
	mr.Close()

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodPost, "/book", tok, `{"pet_id":1}`); w.Code != http.StatusCreated {
			t.Fatalf("attempt %d: status = %d", i, w.Code)
		}
	}
}

func TestSubmitGuardWithoutLocker(t *testing.T) {
	r := gin.New()
	r.POST("/x", SubmitGuard(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := do(r, http.MethodPost, "/x", "", `{}`); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCORSMiddlewareAllowsConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, allowed := range map[string]bool{"http://app.test": true, "http://evil.test": false} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get("Access-Control-Allow-Origin") == origin
		if got != allowed {
			t.Errorf("origin %s: allowed=%v, want %v", origin, got, allowed)
		}
	}
}
