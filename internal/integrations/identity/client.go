package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Client клиент Firebase Auth
type Client struct {
	auth tokenAuthority
	log  Logger
}

// NewClient создает клиент Firebase Auth
// Без файла учетных данных используются Application Default Credentials
// (или эмулятор, если задан FIREBASE_AUTH_EMULATOR_HOST)
func NewClient(ctx context.Context, credentialsFile, projectID string, log Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase app: %v", ErrInternal, err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase auth: %v", ErrInternal, err)
	}

	return &Client{auth: authClient, log: log}, nil
}

// newClientWithAuthority создает клиент поверх произвольной реализации Firebase Auth
func newClientWithAuthority(a tokenAuthority, log Logger) *Client {
	return &Client{auth: a, log: log}
}

// VerifyIDToken проверяет ID токен с проверкой отзыва
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty id token", ErrInvalidToken)
	}

	token, err := c.auth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, c.classify("VerifyIDToken", err)
	}

	return identityFromToken(token), nil
}

// VerifySessionCookie проверяет сессионную cookie с проверкой отзыва
func (c *Client) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	if cookie == "" {
		return nil, fmt.Errorf("%w: empty session cookie", ErrInvalidToken)
	}

	token, err := c.auth.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return nil, c.classify("VerifySessionCookie", err)
	}

	return identityFromToken(token), nil
}

// CreateSessionCookie выпускает сессионную cookie по ID токену
func (c *Client) CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	cookie, err := c.auth.SessionCookie(ctx, idToken, ttl)
	if err != nil {
		return "", c.classify("CreateSessionCookie", err)
	}
	return cookie, nil
}

func (c *Client) classify(op string, err error) error {
	switch {
	case auth.IsIDTokenRevoked(err),
		auth.IsIDTokenExpired(err),
		auth.IsIDTokenInvalid(err),
		auth.IsSessionCookieRevoked(err),
		auth.IsSessionCookieExpired(err),
		auth.IsSessionCookieInvalid(err),
		auth.IsUserDisabled(err),
		auth.IsUserNotFound(err):
		c.log.Warn("%s: rejected token: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	default:
		c.log.Error("%s: firebase auth error: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func identityFromToken(token *auth.Token) *Identity {
	id := &Identity{UID: token.UID}
	id.Email = claimString(token.Claims, "email")
	id.Name = claimString(token.Claims, "name")
	id.Picture = claimString(token.Claims, "picture")
	return id
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
