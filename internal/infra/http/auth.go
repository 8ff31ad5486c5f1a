package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	requestIDKey = "request_id"

	adminRole  = "governance_admin"
	adminScope = "admin:*"
)

type Authenticator interface {
	Authenticate(*gin.Context) (usecases.Principal, error)
}

type HeaderAuthenticator struct{}

func NewHeaderAuthenticator() *HeaderAuthenticator {
	return &HeaderAuthenticator{}
}

func (h *HeaderAuthenticator) Authenticate(c *gin.Context) (usecases.Principal, error) {
	principal := usecases.Principal{
		Subject: strings.TrimSpace(c.GetHeader("X-Principal-Subject")),
	}
	if scopes := strings.TrimSpace(c.GetHeader("X-Principal-Scopes")); scopes != "" {
		principal.Scopes = splitCSV(scopes)
	}
	if roles := strings.TrimSpace(c.GetHeader("X-Principal-Roles")); roles != "" {
		principal.Roles = splitCSV(roles)
	}
	return principal, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

type AuthzError struct {
	Code string
	Err  error
}

func (e *AuthzError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code
}

func (e *AuthzError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) Require(principal usecases.Principal, permission string) error {
	if principal.Subject == "" {
		return usecases.ErrUnauthorized
	}
	if permission == "" {
		return nil
	}
	if hasRole(principal, adminRole) || hasScope(principal, adminScope) {
		return nil
	}
	if strings.HasPrefix(permission, "admin:") {
		return &AuthzError{Code: "MISSING_ROLE", Err: usecases.ErrForbidden}
	}
	if !hasScope(principal, permission) {
		return &AuthzError{Code: "MISSING_SCOPE", Err: usecases.ErrForbidden}
	}
	return nil
}

func hasRole(principal usecases.Principal, role string) bool {
	for _, r := range principal.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func hasScope(principal usecases.Principal, scope string) bool {
	for _, s := range principal.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func IsAuthzError(err error) (*AuthzError, bool) {
	var authz *AuthzError
	if errors.As(err, &authz) {
		return authz, true
	}
	return nil, false
}

func authMiddleware(authenticator Authenticator, authorizer usecases.Authorizer, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticator == nil || authorizer == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "auth misconfigured"})
			return
		}
		principal, err := authenticator.Authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication failed"})
			return
		}
		if err := authorizer.Require(principal, permission); err != nil {
			if authz, ok := IsAuthzError(err); ok {
				c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Code: authz.Code, Message: "forbidden"})
				return
			}
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		if requestID := strings.TrimSpace(c.GetHeader("X-Request-ID")); requestID != "" {
			c.Set(requestIDKey, requestID)
		}
	}
}

func principalFromContext(c *gin.Context) (usecases.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "principal missing")
		return usecases.Principal{}, false
	}
	principal, ok := value.(usecases.Principal)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "principal invalid")
		return usecases.Principal{}, false
	}
	return principal, true
}

func requestID(c *gin.Context) string {
	if value, ok := c.Get(requestIDKey); ok {
		if id, ok := value.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Request-ID"))
}
