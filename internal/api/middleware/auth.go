package middleware

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
)

const adminScope = "admin"

// AdminAuth checks for a bearer token signed by the server's own key pair
// and carrying the admin scope. Used to protect the admin API.
func AdminAuth(verifyKey *rsa.PublicKey) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))

			if tokenStr == "" {
				presenter.Error(w, r, "login required", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return verifyKey, nil
			})
			if err != nil || !token.Valid {
				presenter.Error(w, r, "invalid admin token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				presenter.Error(w, r, "invalid claims", http.StatusUnauthorized)
				return
			}

			scope, ok := claims["scope"].(string)
			if !ok || !slices.Contains(strings.Fields(scope), adminScope) {
				presenter.Error(w, r, "insufficient privileges", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
