package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"tripmind/globals"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

// Auth validates bearer tokens signed with one HMAC secret.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := a.ValidateJWT(tokenString)
		if err != nil || claims.UserID == "" {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := a.ValidateJWT(r.Header.Get("Authorization")); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, claims.UserID))
		}
		// Proceed regardless of token state
		next(w, r, ps)
	}
}

// ValidateJWT parses a "Bearer <token>" header value.
func (a *Auth) ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("unauthorized: invalid token")
	}
	return claims, nil
}

// Sign issues a token for userID. Used by the CLI and tests.
func (a *Auth) Sign(userID, username string, claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:         username,
		UserID:           userID,
		RegisteredClaims: claims,
	})
	return token.SignedString(a.secret)
}
