package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"workorder-approval/internal/domain/workflow"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "workorder.caller"

// Claims carries the caller's role next to the standard subject claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity resolves the bearer token (HS256) into a workflow.Caller.
func Identity(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			caller, err := ParseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetCaller(c, caller)
			return next(c)
		}
	}
}

func ParseToken(secret []byte, raw string) (workflow.Caller, error) {
	var cl Claims
	_, err := jwt.ParseWithClaims(raw, &cl,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return workflow.Caller{}, err
	}
	if cl.Subject == "" {
		return workflow.Caller{}, errors.New("token has no subject")
	}
	role, err := workflow.ParseRole(cl.Role)
	if err != nil {
		return workflow.Caller{}, err
	}
	return workflow.Caller{ID: cl.Subject, Role: role}, nil
}

// SignToken mints a token for subject; used by the token command and tests.
func SignToken(secret []byte, subject string, role workflow.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	cl := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(secret)
}

// SetCaller attaches caller to the request context.
func SetCaller(c echo.Context, caller workflow.Caller) { c.Set(callerKey, caller) }

// CallerFrom returns the caller stored by Identity.
func CallerFrom(c echo.Context) (workflow.Caller, bool) {
	v, ok := c.Get(callerKey).(workflow.Caller)
	return v, ok
}
