package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "medisync/app/jwt"
	"medisync/app/session"
)

type ctxKey int

const ClaimsKey ctxKey = 1

type Auth struct {
	Signer   *jwtutil.Signer
	Sessions *session.Store
}

func (a *Auth) authenticate(r *http.Request) (*jwtutil.Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, false
	}
	token := strings.TrimPrefix(authz, "Bearer ")
	claims, err := a.Signer.Parse(token)
	if err != nil {
		return nil, false
	}
	if a.Sessions != nil && a.Sessions.Revoked(r.Context(), token) {
		return nil, false
	}
	return claims, true
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if claims.Role != "admin" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
