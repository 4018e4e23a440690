package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
	"github.com/FCP2/Secretario-invitaciones/internal/ports/auth"
)

type claimsKey struct{}

// Encabezados de modo dev (sin verifier).
const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugUsername = "X-Debug-Username"
	HeaderDebugRole     = "X-Debug-Role"
)

// AuthContext deja los claims en el contexto cuando puede resolverlos.
// Nunca corta el request: cada handler decide si exige sesión.
// Con verifier solo cuenta el Bearer token; sin verifier se leen los encabezados X-Debug-*.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	resolve := debugClaims
	if verifier != nil {
		resolve = func(r *http.Request) (auth.Claims, bool) {
			return verifiedClaims(r, verifier)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolve(r); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
	if uid == "" {
		return auth.Claims{}, false
	}
	return auth.Claims{
		UserID:   uid,
		Username: strings.TrimSpace(r.Header.Get(HeaderDebugUsername)),
		Role:     strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderDebugRole))),
	}, true
}

func verifiedClaims(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		logger.FromContext(r.Context()).Debug("session rejected", map[string]any{"error": err.Error()})
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
