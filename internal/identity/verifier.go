// Package identity verifies third-party identity tokens issued by the
// external identity provider. It is consulted only during registration and
// login flows; session tokens issued by this service are handled separately.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
)

// ErrInvalidToken is returned for any token the provider would not accept:
// bad signature, wrong issuer, expired, or structurally malformed. Callers
// must not learn which check failed.
var ErrInvalidToken = errors.New("identity token rejected")

// Claims is the verified identity asserted by the provider.
type Claims struct {
	Email     string
	SubjectID string
}

// Verifier validates a raw identity token and returns the verified claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

type providerClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWKSVerifier validates provider tokens against the provider's JWKS
// endpoint, with keys refreshed in the background.
type JWKSVerifier struct {
	keys   keyfunc.Keyfunc
	issuer string
	logger *zap.Logger
}

// NewJWKSVerifier builds a verifier backed by the configured JWKS endpoint.
func NewJWKSVerifier(cfg config.IdentityConfig, logger *zap.Logger) (*JWKSVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("IDENTITY_JWKS_URL is required")
	}

	// NoErrorReturnFirstHTTPReq lets the service start even when the
	// provider is momentarily unreachable.
	storage, err := jwkset.NewStorageFromHTTP(cfg.JWKSURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: cfg.ClientTimeout()},
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.RefreshInterval(),
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("jwks refresh failed", zap.Error(err), zap.String("url", cfg.JWKSURL))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("jwks storage: %w", err)
	}

	keys, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("keyfunc: %w", err)
	}

	return &JWKSVerifier{keys: keys, issuer: cfg.Issuer, logger: logger}, nil
}

// NewJWKSVerifierWithKeyfunc injects a prebuilt keyfunc; used in tests.
func NewJWKSVerifierWithKeyfunc(keys keyfunc.Keyfunc, issuer string, logger *zap.Logger) *JWKSVerifier {
	return &JWKSVerifier{keys: keys, issuer: issuer, logger: logger}
}

// Verify validates the token signature, expiry and issuer and returns the
// embedded email and subject claims.
func (v *JWKSVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	claims := &providerClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(rawToken, claims, v.keys.KeyfuncCtx(ctx), opts...)
	if err != nil {
		v.logger.Debug("identity token validation failed", zap.Error(err))
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{Email: claims.Email, SubjectID: subject}, nil
}
