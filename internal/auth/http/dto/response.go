// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authDomain "github.com/afga-dev/attendify-api/internal/auth/domain"
)

// TokenPairResponse contains a freshly issued session.
// SECURITY: the refresh token is returned once and never readable again.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MapTokensToResponse converts issued domain tokens to an API response.
func MapTokensToResponse(tokens *authDomain.AuthTokens) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
}

// AccessTokenResponse contains the result of a refresh operation.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// LogoutResponse reports the outcome of a logout attempt.
type LogoutResponse struct {
	Result authDomain.LogoutResult `json:"result"`
}

// ChangePasswordResponse reports the outcome of a password change.
type ChangePasswordResponse struct {
	Result authDomain.ChangePasswordResult `json:"result"`
}

// ChangeEmailResponse reports the outcome of an email change.
type ChangeEmailResponse struct {
	Result authDomain.ChangeEmailResult `json:"result"`
}
