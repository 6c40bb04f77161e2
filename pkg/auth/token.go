// Package auth provides JWT-based admin authentication for the
// escotech API. Tokens are signed locally with HS256 and carry the
// admin's database ID; there is no refresh or revocation mechanism,
// so a credential stays valid until it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
)

// tokenTTL is the fixed validity window for issued credentials.
const tokenTTL = 30 * 24 * time.Hour

var (
	// ErrNoToken means the Authorization header carried no bearer token.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken means the token failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAdminGone means the token was valid but its admin no longer exists.
	ErrAdminGone = errors.New("admin not found")
)

// Claims is the JWT claims structure for admin tokens.
type Claims struct {
	AdminID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Service issues and verifies admin credentials.
type Service struct {
	secret []byte
	admins repositories.AdminRepository
}

// NewService creates an auth service signing with the given secret.
func NewService(secret string, admins repositories.AdminRepository) *Service {
	return &Service{secret: []byte(secret), admins: admins}
}

// IssueToken produces a signed credential for the given admin ID with a
// fixed 30-day validity window.
func (s *Service) IssueToken(adminID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a credential's signature and expiry.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate resolves the request's bearer credential to a live Admin
// record. Any failure maps to one of the package sentinel errors.
func (s *Service) Authenticate(r *http.Request) (*models.Admin, error) {
	tokenStr := extractBearer(r)
	if tokenStr == "" {
		return nil, ErrNoToken
	}

	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByID(r.Context(), claims.AdminID)
	if err != nil {
		return nil, ErrAdminGone
	}

	return admin, nil
}

// extractBearer pulls the token out of the Authorization header.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// adminKey is the context key for the authenticated admin record.
const adminKey contextKey = "admin"

// WithAdmin returns a context carrying the authenticated admin.
func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// GetAdmin retrieves the authenticated admin from the request context.
// Returns nil and false if no admin is present.
func GetAdmin(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(*models.Admin)
	return admin, ok
}
