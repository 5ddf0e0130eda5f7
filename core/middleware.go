package core

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const userContextKey = "auth_user"

// OriginRefererMiddleware validates Origin/Referer against the allowed list
// and sets CORS headers. An empty allowed list means any origin is accepted
// (the site frontend is served from a separate host).
func OriginRefererMiddleware(cfg Config) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if origin == "" {
			// Same-origin navigation (no Origin header) is allowed.
			return true
		}
		if len(allowed) == 0 {
			return true
		}
		origin = strings.ToLower(origin)
		_, ok := allowed[origin]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")
		if origin == "" && referer != "" {
			if u, err := url.Parse(referer); err == nil {
				origin = u.Scheme + "://" + u.Host
			}
		}

		// Preflight handling
		if c.Request.Method == http.MethodOptions && origin != "" {
			if !isAllowed(origin) {
				respondError(c, http.StatusForbidden, "FORBIDDEN", "origem não permitida")
				c.Abort()
				return
			}
			setCORSHeaders(c, origin)
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		if !isAllowed(origin) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "origem não permitida")
			c.Abort()
			return
		}
		if origin != "" {
			setCORSHeaders(c, origin)
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Vary", "Origin")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
}

// RequireAuth gates protected routes behind a bearer token. Absent or
// malformed Authorization headers are rejected before any verification work;
// signature and expiry failures share one error category so responses reveal
// nothing about why a token was refused. On success the live account is
// re-resolved from the credential store, so tokens for deleted accounts stop
// working immediately.
func RequireAuth(tokens *TokenIssuer, users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Autenticação necessária.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			respondError(c, http.StatusForbidden, "INVALID_TOKEN", "Token inválido ou expirado.")
			c.Abort()
			return
		}
		id, err := claims.UserID()
		if err != nil {
			respondError(c, http.StatusForbidden, "INVALID_TOKEN", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respondError(c, http.StatusForbidden, "INVALID_TOKEN", "Token inválido ou expirado.")
			} else {
				respondError(c, http.StatusServiceUnavailable, "AUTHENTICATION_UNAVAILABLE", "Serviço de autenticação indisponível.")
			}
			c.Abort()
			return
		}

		c.Set(userContextKey, *user)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}
