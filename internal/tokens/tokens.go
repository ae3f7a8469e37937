package tokens

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// SessionClaims is the access token issued by the identity service. The
// subject is the caller's open id.
type SessionClaims struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	LoginMethod string `json:"login_method,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) Identity() models.Identity {
	return models.Identity{
		OpenID:      c.Subject,
		Name:        c.Name,
		Email:       c.Email,
		LoginMethod: c.LoginMethod,
	}
}

func SessionClaimsFromToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// SignSession issues an HS256 session token. Production tokens come from the
// identity service; this is used by tooling and tests.
func SignSession(id models.Identity, exp time.Time, secret []byte) (string, error) {
	claims := SessionClaims{
		Name:        id.Name,
		Email:       id.Email,
		LoginMethod: id.LoginMethod,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.OpenID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func CreateCookie(name, value, path string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
