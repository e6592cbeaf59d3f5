// Package auth resolves the bearer token of a request into a Session and carries it in
// the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/satheeshds/buildledger/ledger"
)

const issuer = "buildledger"

// Session is the authenticated caller of one request.
type Session struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Actor converts the session into the identity passed to ledger operations.
func (s Session) Actor() ledger.Actor {
	return ledger.Actor{UserID: s.UserID, TenantID: s.TenantID, Role: s.Role}
}

// Claims are the JWT claims carrying a Session.
type Claims struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Authenticator issues and verifies HS256 tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for s.
func (a *Authenticator) Issue(s Session) (string, error) {
	now := time.Now()
	claims := Claims{
		TenantID: s.TenantID,
		Email:    s.Email,
		Role:     s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse verifies token and returns its session.
func (a *Authenticator) Parse(token string) (Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return Session{}, fmt.Errorf("%w: subject and tenant are required", ErrInvalidToken)
	}
	return Session{UserID: claims.Subject, TenantID: claims.TenantID, Email: claims.Email, Role: claims.Role}, nil
}

// FromRequest reads the Authorization bearer token.
func (a *Authenticator) FromRequest(r *http.Request) (Session, error) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Session{}, ErrMissingToken
	}
	return a.Parse(strings.TrimSpace(token))
}

type contextKey struct{}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by the middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// Middleware injects the caller's session. A nil Authenticator injects dev instead.
// onError writes the response for a rejected token.
func Middleware(a *Authenticator, dev Session, onError func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := dev
			if a != nil {
				var err error
				if s, err = a.FromRequest(r); err != nil {
					onError(w, err)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		})
	}
}
