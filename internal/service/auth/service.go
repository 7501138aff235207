package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/metrics"
)

// Authenticator applies the directory login rules.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (auth.Session, error)
	ActiveEmployee(id string) (employee.Employee, error)
}

type AuthServiceImpl struct {
	store Authenticator
	jwt.Service
}

func NewAuthService(store Authenticator, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		store:   store,
		Service: jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	session, err := a.store.Authenticate(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		metrics.ObserveLogin("failure")
		return auth.TokenResponse{}, err
	}

	token, expiresAt, err := a.GenerateAccessToken(session)
	if err != nil {
		metrics.ObserveLogin("error")
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	metrics.ObserveLogin("success")

	slog.Info("User logged in", "user_id", session.Identity.ID, "is_admin", session.IsAdmin)
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        auth.NewIdentityResponse(session),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	a.RevokeToken(accessToken)
	return nil
}

// Me implements auth.AuthService. Employee identities are refreshed from the
// directory so profile changes show without a new token.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.IdentityResponse, error) {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return auth.IdentityResponse{}, err
	}

	if !session.IsAdmin && !auth.IsReservedEmail(session.Identity.Email) {
		e, err := a.store.ActiveEmployee(session.Identity.ID)
		if err != nil {
			return auth.IdentityResponse{}, err
		}
		session.Identity = e.Identity()
	}

	return auth.NewIdentityResponse(session), nil
}
