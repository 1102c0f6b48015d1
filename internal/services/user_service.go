package services

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// UserService consumes the identity provider's verification surface. Token
// issuance and the OAuth handshake live entirely on the provider side; only
// refresh is exercised here, by the auth middleware.
type UserService struct {
	supabaseClient *supabase.Client
}

func NewUserService(supabaseClient *supabase.Client) *UserService {
	return &UserService{
		supabaseClient: supabaseClient,
	}
}

func (us *UserService) RefreshToken(refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := us.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}
