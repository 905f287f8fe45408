package mockapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"shopadmin/internal/domain"
)

const adminID int64 = 1

// Claims is the token payload the backend issues.
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func (b *Backend) issue(email string) (string, error) {
	now := b.opts.Now()
	claims := Claims{
		ID:    adminID,
		Email: email,
		Role:  "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.opts.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.opts.Secret))
}

func (b *Backend) parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(b.opts.Secret), nil
	}, jwt.WithTimeFunc(b.opts.Now))
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func bearer(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func (b *Backend) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			fail(w, http.StatusUnauthorized, "not authorized")
			return
		}
		claims, err := b.parse(tokenStr)
		if err != nil {
			fail(w, http.StatusUnauthorized, "not authorized")
			return
		}
		if claims.Role != "ADMIN" {
			fail(w, http.StatusForbidden, "no access")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	}
}

func claimsOf(r *http.Request) *Claims {
	c, _ := r.Context().Value(ctxKey{}).(*Claims)
	if c == nil {
		return &Claims{}
	}
	return c
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.EqualFold(in.Email, b.opts.AdminEmail) || in.Password != b.opts.AdminPassword {
		fail(w, http.StatusBadRequest, "invalid email or password")
		return
	}
	tok, err := b.issue(b.opts.AdminEmail)
	if err != nil {
		fail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (b *Backend) check(w http.ResponseWriter, r *http.Request) {
	tok, err := b.issue(claimsOf(r).Email)
	if err != nil {
		fail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	c := claimsOf(r)
	writeJSON(w, http.StatusOK, domain.UserInfo{ID: c.ID, Username: strings.Split(c.Email, "@")[0], Email: c.Email, Role: c.Role})
}
