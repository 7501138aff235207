package auth

import "context"

type AuthService interface {
	// Login checks credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the given access token
	Logout(ctx context.Context, accessToken string) error

	// Me returns the identity carried by the request token
	Me(ctx context.Context) (IdentityResponse, error)
}
