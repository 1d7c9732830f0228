package server

import (
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"hireready/internal/errors"
)

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func TestOptimizedFileName(t *testing.T) {
	tests := []struct {
		name        string
		companyName string
		expected    string
	}{
		{name: "plain company", companyName: "Acme", expected: "optimized_resume_Acme.pdf"},
		{name: "spaces replaced", companyName: "Acme Corp Inc", expected: "optimized_resume_Acme_Corp_Inc.pdf"},
		{name: "empty falls back", companyName: "", expected: "optimized_resume_updated.pdf"},
		{name: "whitespace only falls back", companyName: "   ", expected: "optimized_resume_updated.pdf"},
		{name: "surrounding whitespace trimmed", companyName: "  Acme  ", expected: "optimized_resume_Acme.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optimizedFileName(tt.companyName); got != tt.expected {
				t.Errorf("optimizedFileName(%q) = %q, want %q", tt.companyName, got, tt.expected)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected string
	}{
		{name: "long key shows prefix", apiKey: "abcdefgh12345678", expected: "abcdefgh****"},
		{name: "short key fully masked", apiKey: "short", expected: "****"},
		{name: "exactly eight fully masked", apiKey: "12345678", expected: "****"},
		{name: "empty key", apiKey: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.apiKey); got != tt.expected {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.expected)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr host",
			remoteAddr: "192.0.2.10:54321",
			expected:   "192.0.2.10",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "192.0.2.10:54321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 192.0.2.1"},
			expected:   "203.0.113.5",
		},
		{
			name:       "invalid forwarded entries skipped",
			remoteAddr: "192.0.2.10:54321",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip, 203.0.113.5"},
			expected:   "203.0.113.5",
		},
		{
			name:       "x-real-ip used when no forwarded header",
			remoteAddr: "192.0.2.10:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			expected:   "203.0.113.9",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.10",
			expected:   "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/analyze", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.expected {
				t.Errorf("getClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		expected string
	}{
		{
			name:     "api key header",
			byAPIKey: true,
			headers:  map[string]string{"X-API-Key": "secret"},
			expected: "api:secret",
		},
		{
			name:     "bearer token",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer secret"},
			expected: "api:secret",
		},
		{
			name:     "falls back to ip when no key present",
			byAPIKey: true,
			byIP:     true,
			expected: "ip:192.0.2.10",
		},
		{
			name:     "ip only",
			byIP:     true,
			expected: "ip:192.0.2.10",
		},
		{
			name:     "neither dimension enabled",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/analyze", nil)
			r.RemoteAddr = "192.0.2.10:54321"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.expected {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst capacity enforced per key", func(t *testing.T) {
		rl := NewRateLimiter(60, time.Minute, 2, testLogger())
		defer rl.Close()

		if !rl.Allow("ip:192.0.2.10") {
			t.Error("Expected first request allowed")
		}
		if !rl.Allow("ip:192.0.2.10") {
			t.Error("Expected second request within burst allowed")
		}
		if rl.Allow("ip:192.0.2.10") {
			t.Error("Expected third request to exceed burst")
		}

		// Independent keys get their own bucket
		if !rl.Allow("ip:198.51.100.7") {
			t.Error("Expected different key to be allowed")
		}
	})

	t.Run("stats report configuration", func(t *testing.T) {
		rl := NewRateLimiter(120, time.Minute, 5, testLogger())
		defer rl.Close()

		rl.Allow("ip:192.0.2.10")
		stats := rl.GetStats()
		if stats["active_limiters"].(int) != 1 {
			t.Errorf("Expected 1 active limiter, got %v", stats["active_limiters"])
		}
		if stats["rate_per_minute"].(float64) != 120.0 {
			t.Errorf("Expected 120 requests per minute, got %v", stats["rate_per_minute"])
		}
		if stats["burst_capacity"].(int) != 5 {
			t.Errorf("Expected burst capacity 5, got %v", stats["burst_capacity"])
		}
	})

	t.Run("cleanup evicts stale limiters", func(t *testing.T) {
		rl := NewRateLimiter(60, time.Minute, 2, testLogger())
		defer rl.Close()

		rl.Allow("ip:192.0.2.10")
		rl.cleanup(0)

		stats := rl.GetStats()
		if stats["active_limiters"].(int) != 0 {
			t.Errorf("Expected limiters evicted, got %v", stats["active_limiters"])
		}
	})
}
