package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://dashboard.example.com",
			allowedOrigins: []string{"https://dashboard.example.com"},
			want:           true,
		},
		{
			name:           "wildcard port match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "https://dashboard.example.com",
			allowedOrigins: []string{"http://localhost:*", "https://dashboard.example.com"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			want:           false,
		},
		{
			name:           "exact entry does not match other port",
			origin:         "http://localhost:3001",
			allowedOrigins: []string{"http://localhost:3000"},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{"allowed origin - GET request", "http://localhost:3000", "GET", http.StatusOK, true},
		{"allowed origin - OPTIONS request", "http://localhost:3000", "OPTIONS", http.StatusNoContent, true},
		{"disallowed origin", "http://evil.com", "GET", http.StatusOK, false},
		{"no origin header", "", "GET", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware([]string{"http://localhost:*"}))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}

			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
				t.Errorf("Access-Control-Allow-Credentials = %s, want unset for an unauthenticated API", got)
			}

			corsHeader := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantCORS {
				if corsHeader != tt.origin {
					t.Errorf("Access-Control-Allow-Origin = %s, want %s", corsHeader, tt.origin)
				}
				if w.Header().Get("Access-Control-Allow-Methods") != "GET, OPTIONS" {
					t.Errorf("Access-Control-Allow-Methods = %s, want GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
				}
			} else if corsHeader != "" {
				t.Errorf("Access-Control-Allow-Origin should not be set for disallowed origin, got %s", corsHeader)
			}
		})
	}
}

// stubLimiter allows the first n requests per key
type stubLimiter struct {
	n    int
	seen map[string]int
}

func (s *stubLimiter) Allow(key string) bool {
	s.seen[key]++
	return s.seen[key] <= s.n
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := &stubLimiter{n: 2, seen: map[string]int{}}
	handled := 0
	router := gin.New()
	router.Use(RateLimitMiddleware(limiter))
	router.GET("/test", func(c *gin.Context) {
		handled++
		c.String(http.StatusOK, "OK")
	})

	var last *httptest.ResponseRecorder
	request := func(remoteAddr string) int {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = remoteAddr
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
		return last.Code
	}

	for i := 0; i < 2; i++ {
		if code := request("192.0.2.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i+1, code, http.StatusOK)
		}
	}
	if code := request("192.0.2.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("over budget: Status = %d, want %d", code, http.StatusTooManyRequests)
	}
	if body := last.Body.String(); body != `{"detail":"Rate limit exceeded"}` {
		t.Errorf("over budget: body = %s, want rate limit detail", body)
	}
	if handled != 2 {
		t.Errorf("handler ran %d times, want 2", handled)
	}
	if code := request("192.0.2.2:1234"); code != http.StatusOK {
		t.Errorf("other client: Status = %d, want %d", code, http.StatusOK)
	}
	if limiter.seen["192.0.2.1"] != 3 {
		t.Errorf("limiter keyed by %v, want client IP without port", limiter.seen)
	}
}
