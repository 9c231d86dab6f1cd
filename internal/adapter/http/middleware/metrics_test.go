package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/api/v1/benefits", "/api/v1/benefits"},
		{"/api/v1/benefits/", "/api/v1/benefits/"},
		{"/api/v1/benefits/active", "/api/v1/benefits/active"},
		{"/api/v1/benefits/01ABC123XYZ", "/api/v1/benefits/:id"},
		{"/api/v1/benefits/01ABC123XYZ/extra", "/api/v1/benefits/:id/extra"},
		{"/api/v1/transfers", "/api/v1/transfers"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
