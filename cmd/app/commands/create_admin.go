package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/afga-dev/attendify-api/internal/auth/domain"
	authUseCase "github.com/afga-dev/attendify-api/internal/auth/usecase"
	"github.com/afga-dev/attendify-api/internal/authz"
)

// RunCreateAdmin creates an account holding the ADMIN role. Intended for
// bootstrapping a fresh deployment, where no account exists yet that could
// call the privileged registration endpoint. Outputs the session tokens of
// the new account in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(
	ctx context.Context,
	useCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating admin account", slog.String("email", email))

	input := &authDomain.RegisterWithRolesInput{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    []authz.Role{authz.RoleAdmin},
	}

	tokens, err := useCase.RegisterWithRoles(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateAdminJSON(writer, email, tokens)
	} else {
		outputCreateAdminText(writer, email, tokens)
	}

	logger.Info("admin account created successfully", slog.String("email", email))

	return nil
}

// outputCreateAdminText outputs the result in human-readable text format.
func outputCreateAdminText(writer io.Writer, email string, tokens *authDomain.AuthTokens) {
	_, _ = fmt.Fprintf(writer, "Admin account created for %s\n", email)
	_, _ = fmt.Fprintf(writer, "Access token:  %s\n", tokens.AccessToken)
	_, _ = fmt.Fprintf(writer, "Refresh token: %s\n", tokens.RefreshToken)
}

// outputCreateAdminJSON outputs the result in JSON format for machine consumption.
func outputCreateAdminJSON(writer io.Writer, email string, tokens *authDomain.AuthTokens) {
	result := map[string]interface{}{
		"email":         email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
