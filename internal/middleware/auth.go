package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUserNotFound is returned by UserResolver when no user matches the given Cognito sub.
var ErrUserNotFound = errors.New("user not found")

// UserResolver resolves a Cognito sub claim to a database user ID.
// Implementations must return ErrUserNotFound (or a wrapped form) when the user does not exist.
type UserResolver interface {
	ResolveUserID(ctx context.Context, cognitoSub string) (string, error)
}

// KeySource looks up RSA verification keys by kid. *JWKSClient implements it.
type KeySource interface {
	GetKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

type AuthConfig struct {
	DevMode      bool
	Keys         KeySource
	Issuer       string
	AppClientID  string
	UserResolver UserResolver
	Leeway       time.Duration
}

type Auth struct {
	cfg AuthConfig
}

// idClaims are the parts of a Cognito ID token the API relies on.
type idClaims struct {
	jwt.RegisteredClaims
	TokenUse string `json:"token_use"`
	Email    string `json:"email"`
}

func NewAuth(cfg AuthConfig) (*Auth, error) {
	if !cfg.DevMode {
		if cfg.UserResolver == nil {
			return nil, fmt.Errorf("middleware: UserResolver is required when DevMode is false")
		}
		if cfg.Keys == nil {
			return nil, fmt.Errorf("middleware: Keys is required when DevMode is false")
		}
	}
	return &Auth{cfg: cfg}, nil
}

func isPublic(p string) bool {
	p = path.Clean(p)
	return p == "/health" || strings.HasPrefix(p, "/api/v1/auth/")
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if a.cfg.DevMode {
			a.handleDevMode(w, r, next)
			return
		}

		a.handleJWT(w, r, next)
	})
}

// handleDevMode trusts X-User-ID. The value must still be a UUID since it
// ends up in queries against uuid columns.
func (a *Auth) handleDevMode(w http.ResponseWriter, r *http.Request, next http.Handler) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header required in dev mode")
		return
	}
	if _, err := uuid.Parse(userID); err != nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID must be a UUID")
		return
	}

	next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
}

func (a *Auth) handleJWT(w http.ResponseWriter, r *http.Request, next http.Handler) {
	tokenStr, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "bearer token required")
		return
	}

	claims, err := a.verify(r.Context(), tokenStr)
	if err != nil {
		slog.DebugContext(r.Context(), "token rejected", "error", err, "request_id", RequestIDFrom(r.Context()))
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
		return
	}

	userID, err := a.cfg.UserResolver.ResolveUserID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user not found")
		} else {
			slog.ErrorContext(r.Context(), "user resolution failed", "error", err, "request_id", RequestIDFrom(r.Context()))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (a *Auth) verify(ctx context.Context, tokenStr string) (*idClaims, error) {
	claims := &idClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("kid header not found")
		}
		return a.cfg.Keys.GetKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithAudience(a.cfg.AppClientID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(a.cfg.Leeway),
	)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != "id" {
		return nil, fmt.Errorf("unexpected token_use %q", claims.TokenUse)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("sub claim not found")
	}
	return claims, nil
}

// CognitoJWKSURL returns the JWKS URL for the given Cognito User Pool.
func CognitoJWKSURL(region, userPoolID string) string {
	return CognitoIssuer(region, userPoolID) + "/.well-known/jwks.json"
}

// CognitoIssuer returns the expected issuer for the given Cognito User Pool.
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}
