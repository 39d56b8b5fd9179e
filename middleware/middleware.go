package middleware

import (
	"context"
	"fmt"
	"net/http"

	"milonga/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Username    string   `json:"username"`
	UserID      string   `json:"userId"`
	Role        []string `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Middleware wraps an httprouter handle.
type Middleware func(httprouter.Handle) httprouter.Handle

// Chain applies middlewares left to right: the first listed runs first.
func Chain(mws ...Middleware) Middleware {
	return func(final httprouter.Handle) httprouter.Handle {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

func bearerToken(r *http.Request) string {
	tokenString := r.Header.Get("Authorization")
	if len(tokenString) >= 8 && tokenString[:7] == "Bearer " {
		return tokenString[7:]
	}
	// Gateway capture redirects cannot carry headers; they pass the token
	// in the query string instead.
	return r.URL.Query().Get("authToken")
}

func parseClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.RolesKey, claims.Role)
	return r.WithContext(ctx)
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw := bearerToken(r)
		if raw == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := parseClaims(raw)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, withClaims(r, claims), ps)
	}
}

func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if raw := bearerToken(r); raw != "" {
			if claims, err := parseClaims(raw); err == nil {
				r = withClaims(r, claims)
			}
		}
		// Proceed regardless of token state
		next(w, r, ps)
	}
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}
	return parseClaims(tokenString[7:])
}
