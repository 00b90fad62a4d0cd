package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is used when the backend states no lifetime and the
// token carries no exp claim.
const DefaultTokenLifetime = time.Hour

// AuthService manages the storefront session.
//
// Login, Register and Refresh store the issued token. Logout and LogoutAll
// clear it even when the backend call fails, and so does a failed Refresh.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
	Refresh(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	// EnsureFresh refreshes the token when it is about to expire.
	EnsureFresh(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// Tokens is the token store as seen by AuthService.
type Tokens interface {
	SetToken(ctx context.Context, token string, lifetimeSeconds int, kind string) error
	ClearToken(ctx context.Context)
	IsExpiringSoon(ctx context.Context) bool
	IsAuthenticated(ctx context.Context) bool
}

type authService struct {
	api    Doer
	tokens Tokens
	logger logging.Logger
	now    func() time.Time
}

type AuthOption func(*authService)

// WithAuthClock replaces time.Now when deriving lifetimes from exp claims.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

func NewAuthService(api Doer, tokens Tokens, logger logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{api: api, tokens: tokens, logger: logger.With("component", "auth"), now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	if err := post(ctx, a.api, "/auth/login", models.Credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.store(ctx, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp.User, nil
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var resp models.AuthResponse
	if err := post(ctx, a.api, "/auth/register", reg, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.store(ctx, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	defer a.tokens.ClearToken(ctx)
	return wrap("logout", post(ctx, a.api, "/auth/logout", nil, nil))
}

func (a *authService) LogoutAll(ctx context.Context) error {
	defer a.tokens.ClearToken(ctx)
	return wrap("logout all", post(ctx, a.api, "/auth/logout-all", nil, nil))
}

func (a *authService) Refresh(ctx context.Context) error {
	var resp models.AuthResponse
	err := post(ctx, a.api, "/auth/refresh", nil, &resp)
	if err == nil {
		err = a.store(ctx, &resp)
	}
	if err != nil {
		a.logger.Warn(ctx, "token refresh failed, clearing session", "error", err)
		a.tokens.ClearToken(ctx)
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	var resp models.Envelope[models.User]
	if err := get(ctx, a.api, "/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &resp.Data, nil
}

func (a *authService) EnsureFresh(ctx context.Context) error {
	if !a.tokens.IsExpiringSoon(ctx) {
		return nil
	}
	a.logger.Debug(ctx, "token expiring soon, refreshing")
	return a.Refresh(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.tokens.IsAuthenticated(ctx)
}

func (a *authService) store(ctx context.Context, resp *models.AuthResponse) error {
	if resp.AccessToken == "" {
		return fmt.Errorf("empty access token: %w", common.ErrInvalidToken)
	}

	lifetime, err := a.lifetime(resp)
	if err != nil {
		return err
	}

	kind := resp.TokenType
	if kind == "" {
		kind = common.BearerTokenType
	}
	return a.tokens.SetToken(ctx, resp.AccessToken, lifetime, kind)
}

// lifetime returns the token lifetime in seconds: expires_in when given,
// otherwise the time left until the JWT exp claim.
func (a *authService) lifetime(resp *models.AuthResponse) (int, error) {
	if resp.ExpiresIn > 0 {
		return resp.ExpiresIn, nil
	}

	exp, err := expiry(resp.AccessToken)
	if err != nil {
		a.logger.Debug(context.Background(), "token has no readable exp claim, using default lifetime", "error", err)
		return int(DefaultTokenLifetime / time.Second), nil
	}

	left := int(exp.Sub(a.now()) / time.Second)
	if left <= 0 {
		return 0, fmt.Errorf("token already expired at %s: %w", exp.Format(time.RFC3339), common.ErrInvalidToken)
	}
	return left, nil
}

var errNoExpiry = errors.New("no exp claim")

// expiry reads the exp claim. The signature is not verified.
func expiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}
