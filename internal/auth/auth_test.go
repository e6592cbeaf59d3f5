package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Session{UserID: "u-1", TenantID: "t-1", Email: "alice@example.com", Role: "manager"}

func TestIssueAndParse(t *testing.T) {
	a := New("secret", time.Hour)
	token, err := a.Issue(alice)
	require.NoError(t, err)

	got, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.True(t, got.Actor().CanApprove())
}

func TestParseRejects(t *testing.T) {
	a := New("secret", time.Hour)
	other, err := New("other-secret", time.Hour).Issue(alice)
	require.NoError(t, err)
	expired, err := New("secret", -time.Minute).Issue(alice)
	require.NoError(t, err)
	noTenant, err := a.Issue(Session{UserID: "u-1"})
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{TenantID: "t-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", other},
		{"expired", expired},
		{"missing tenant", noTenant},
		{"unsigned", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMiddleware(t *testing.T) {
	a := New("secret", time.Hour)
	token, err := a.Issue(alice)
	require.NoError(t, err)
	dev := Session{UserID: "dev", TenantID: "dev-tenant", Role: "admin"}

	var seen Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	})
	onError := func(w http.ResponseWriter, err error) { w.WriteHeader(http.StatusUnauthorized) }

	tests := []struct {
		name       string
		auth       *Authenticator
		header     string
		wantStatus int
		want       Session
	}{
		{"valid bearer", a, "Bearer " + token, http.StatusOK, alice},
		{"missing header", a, "", http.StatusUnauthorized, Session{}},
		{"wrong scheme", a, "Basic " + token, http.StatusUnauthorized, Session{}},
		{"auth disabled", nil, "", http.StatusOK, dev},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = Session{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Middleware(tt.auth, dev, onError)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.want, seen)
		})
	}
}
