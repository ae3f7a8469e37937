package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/authclient"
	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/tokens"
)

const userKey = "user"

var errNoSession = errors.New("no session")

type SessionResolver interface {
	ResolveSession(ctx context.Context, id models.Identity) (*models.User, error)
}

type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken, accessToken string) (*authclient.RefreshResponse, error)
}

// AutoRefreshMiddleware authenticates callers from the session token and
// rotates an expired token through the identity service when a refresh token
// is present.
type AutoRefreshMiddleware struct {
	JWTSecret    []byte
	AuthClient   Refresher
	Users        SessionResolver
	CookieSecure bool
}

func NewAutoRefreshMiddleware(secret []byte, authClient Refresher, users SessionResolver, cookieSecure bool) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:    secret,
		AuthClient:   authClient,
		Users:        users,
		CookieSecure: cookieSecure,
	}
}

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.authenticate(c); err != nil {
			return m.reject(c, err)
		}
		return next(c)
	}
}

func (m *AutoRefreshMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := m.authenticate(c)
		if err != nil {
			return m.reject(c, err)
		}
		if !u.IsAdmin() {
			logging.FromContext(c.Request().Context()).Warn("auth_rejected", "status", 403, "reason", "admin access required", "user_id", u.ID)
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// OptionalAuth resolves the caller when a valid session exists and otherwise
// lets the request through anonymously.
func (m *AutoRefreshMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.authenticate(c); err != nil && !errors.Is(err, errNoSession) {
			logging.FromContext(c.Request().Context()).Info("optional_auth_anonymous", "error", err)
		}
		return next(c)
	}
}

func (m *AutoRefreshMiddleware) reject(c echo.Context, err error) error {
	l := logging.FromContext(c.Request().Context())
	if errors.Is(err, service.ErrStorageUnavailable) {
		l.Error("auth_rejected", "status", 503, "reason", "storage unavailable", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
	}
	l.Warn("auth_rejected", "status", 401, "reason", "unauthenticated", "error", err)
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}

func (m *AutoRefreshMiddleware) authenticate(c echo.Context) (*models.User, error) {
	raw, fromCookie := sessionToken(c)
	if raw == "" {
		return nil, errNoSession
	}

	claims, err := tokens.SessionClaimsFromToken(raw, m.JWTSecret)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) || !fromCookie {
			if fromCookie {
				m.clearAuthCookies(c)
			}
			return nil, err
		}
		if claims, err = m.refresh(c, raw); err != nil {
			m.clearAuthCookies(c)
			return nil, err
		}
	}

	u, err := m.Users.ResolveSession(c.Request().Context(), claims.Identity())
	if err != nil {
		return nil, err
	}

	c.Set(userKey, u)
	c.Set("user_id", u.ID)
	c.Set("role", u.Role)
	return u, nil
}

func (m *AutoRefreshMiddleware) refresh(c echo.Context, access string) (*tokens.SessionClaims, error) {
	if m.AuthClient == nil {
		return nil, errors.New("access token expired")
	}
	refreshCookie, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		return nil, errors.New("refresh token missing")
	}

	resp, err := m.AuthClient.RefreshTokens(c.Request().Context(), refreshCookie.Value, access)
	if err != nil {
		return nil, err
	}

	claims, err := tokens.SessionClaimsFromToken(resp.AccessToken, m.JWTSecret)
	if err != nil {
		return nil, err
	}

	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, resp.AccessToken, "/", time.Unix(resp.AccessExp, 0), m.CookieSecure))
	if resp.RefreshToken != "" {
		c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, resp.RefreshToken, "/", time.Unix(resp.RefreshExp, 0), m.CookieSecure))
	}
	logging.FromContext(c.Request().Context()).Info("session_refreshed", "open_id", claims.Subject)
	return claims, nil
}

func (m *AutoRefreshMiddleware) clearAuthCookies(c echo.Context) {
	ClearSession(c, m.CookieSecure)
}

// ClearSession expires both session cookies.
func ClearSession(c echo.Context, secure bool) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", secure))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/", secure))
}

func sessionToken(c echo.Context) (string, bool) {
	if ck, err := c.Cookie(tokens.AccessCookie); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after), false
	}
	return "", false
}
