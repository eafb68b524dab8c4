package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	orgIDKey  contextKey = "org_id"
	userIDKey contextKey = "user_id"
)

// Claims extracted from the bearer token issued by the account service.
// The pipeline needs both ids for batch ownership and audit events.
type Claims struct {
	OrganizationID string `json:"org_id"`
	UserID         string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and puts the organization and user ids on
// the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}

			_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			orgID, err := uuid.Parse(claims.OrganizationID)
			if err != nil {
				http.Error(w, "invalid org claim", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				http.Error(w, "invalid user claim", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), orgIDKey, orgID)
			ctx = context.WithValue(ctx, userIDKey, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrganizationID returns the authenticated organization, or uuid.Nil when
// the middleware did not run.
func OrganizationID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(orgIDKey).(uuid.UUID)
	return id
}

// UserID returns the authenticated user, or uuid.Nil when the middleware
// did not run.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}
