package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/netx"
)

// AuthProvider is the external authentication service.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	// SignUp returns a nil session when the account still needs email confirmation.
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	Recover(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, accessToken, password string) error
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	Health(ctx context.Context) error
}

// AuthClient talks to a GoTrue-compatible auth API rooted at baseURL
// (for a hosted project, "https://<ref>.supabase.co/auth/v1").
type AuthClient struct {
	baseURL string
	anonKey string
	http    *http.Client
	now     func() time.Time
}

func NewAuthClient(baseURL, anonKey string, hc *http.Client) *AuthClient {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    hc,
		now:     time.Now,
	}
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type credentials struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *AuthClient) header(accessToken string) http.Header {
	h := http.Header{}
	h.Set("apikey", c.anonKey)
	if accessToken != "" {
		h.Set("Authorization", "Bearer "+accessToken)
	}
	return h
}

func (c *AuthClient) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	return mapError(netx.DoJSON(ctx, c.http, method, c.baseURL+path, c.header(accessToken), in, out))
}

// mapError turns transport errors into ErrUnavailable and rejected
// credentials into ErrUnauthorized while keeping the provider's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var he *netx.HTTPError
	if !errors.As(err, &he) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch he.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.NewUserError(ErrUnauthorized, he.Error())
	default:
		return he
	}
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", credentials{Email: email, Password: password}, &tr); err != nil {
		return nil, err
	}
	return sessionFromToken(tr, c.now())
}

func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/signup", "", credentials{Email: email, Password: password}, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, nil
	}
	return sessionFromToken(tr, c.now())
}

func (c *AuthClient) Recover(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.do(ctx, http.MethodPost, path, "", credentials{Email: email}, nil)
}

func (c *AuthClient) UpdatePassword(ctx context.Context, accessToken, password string) error {
	return c.do(ctx, http.MethodPut, "/user", accessToken, credentials{Password: password}, nil)
}

func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	var tr tokenResponse
	in := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", in, &tr); err != nil {
		return nil, err
	}
	return sessionFromToken(tr, c.now())
}

func (c *AuthClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}
