package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"obligation-engine/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: testSecret}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	var seenSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		cfg        config.AuthConfig
		header     string
		wantStatus int
	}{
		{name: "disabled middleware lets requests through", cfg: config.AuthConfig{Enabled: false}, wantStatus: http.StatusOK},
		{name: "missing header", cfg: cfg, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", cfg: cfg, header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", cfg: cfg, header: "Bearer invalidtoken", wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong secret",
			cfg:        cfg,
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, "other", jwt.RegisteredClaims{Subject: "teller", ExpiresAt: future}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected algorithm",
			cfg:        cfg,
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, jwt.RegisteredClaims{Subject: "teller", ExpiresAt: future}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			cfg:        cfg,
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "teller", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			cfg:        cfg,
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "teller", ExpiresAt: future}),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.cfg, discardLogger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":{"message":"Unauthorized"}}`, rec.Body.String())
			}
		})
	}

	t.Run("valid token exposes its subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "teller", ExpiresAt: future}))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, discardLogger)(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "teller", seenSubject)
	})
}
