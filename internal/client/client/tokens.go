package client

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the access-token claims the client relies on.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAccessToken reads the claims of an access token without verifying the
// signature; the client only needs identity and expiry, and the backend
// verifies every request on its side.
func ParseAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims, nil
}

func sessionFromToken(tr tokenResponse, now time.Time) (*models.Session, error) {
	if tr.AccessToken == "" {
		return nil, errors.New("auth response carries no access token")
	}

	s := &models.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
	}

	switch {
	case tr.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(tr.ExpiresAt, 0).UTC()
	case tr.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	}

	if tr.User != nil {
		s.User = models.User{ID: tr.User.ID, Email: tr.User.Email}
	}

	if s.User.ID == "" || s.ExpiresAt.IsZero() {
		claims, err := ParseAccessToken(tr.AccessToken)
		if err != nil {
			return nil, err
		}
		if s.User.ID == "" {
			s.User.ID = claims.Subject
			s.User.Email = claims.Email
		}
		if s.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
			s.ExpiresAt = claims.ExpiresAt.UTC()
		}
	}

	if s.User.ID == "" {
		return nil, errors.New("auth response carries no user id")
	}
	return s, nil
}

// ParseRecoveryLink builds a session from the redirect URL of a password
// recovery email, whose fragment looks like
// "#access_token=...&refresh_token=...&expires_in=3600&type=recovery".
func ParseRecoveryLink(link string, now time.Time) (*models.Session, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}

	values, err := url.ParseQuery(u.EscapedFragment())
	if err != nil {
		return nil, fmt.Errorf("invalid link fragment: %w", err)
	}
	if values.Get("type") != "recovery" {
		return nil, ErrNotRecoveryLink
	}

	tr := tokenResponse{
		AccessToken:  values.Get("access_token"),
		RefreshToken: values.Get("refresh_token"),
		TokenType:    values.Get("token_type"),
	}
	if v := values.Get("expires_at"); v != "" {
		tr.ExpiresAt, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := values.Get("expires_in"); v != "" {
		tr.ExpiresIn, _ = strconv.ParseInt(v, 10, 64)
	}

	return sessionFromToken(tr, now)
}
