package app

import (
	"fmt"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	authRepository "github.com/afga-dev/attendify-api/internal/auth/repository"
	authService "github.com/afga-dev/attendify-api/internal/auth/service"
	authUseCase "github.com/afga-dev/attendify-api/internal/auth/usecase"
	"github.com/afga-dev/attendify-api/internal/metrics"
	userRepository "github.com/afga-dev/attendify-api/internal/user/repository"
)

// TokenCodec returns the signed bearer token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = authService.NewJWTCodec(c.config.JWTSigningKey, c.config.JWTIssuer)
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// TokenRepository returns the refresh token repository based on database driver.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	var err error
	c.tokenRepoInit.Do(func() {
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// AuthUserRepository returns the user repository narrowed to the operations
// the session flows need.
func (c *Container) AuthUserRepository() (authUseCase.UserRepository, error) {
	var err error
	c.authUserRepoInit.Do(func() {
		c.authUserRepo, err = c.initAuthUserRepository()
		if err != nil {
			c.initErrors["authUserRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUserRepo"]; exists {
		return nil, storedErr
	}
	return c.authUserRepo, nil
}

// AuthUseCase returns the session use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUCInit.Do(func() {
		c.authUC, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUC"]; exists {
		return nil, storedErr
	}
	return c.authUC, nil
}

// TokenMaintenanceUseCase returns the token store housekeeping use case.
func (c *Container) TokenMaintenanceUseCase() (authUseCase.TokenMaintenanceUseCase, error) {
	var err error
	c.tokenMaintenanceUCInit.Do(func() {
		c.tokenMaintenanceUC, err = c.initTokenMaintenanceUseCase()
		if err != nil {
			c.initErrors["tokenMaintenanceUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenMaintenanceUC"]; exists {
		return nil, storedErr
	}
	return c.tokenMaintenanceUC, nil
}

// AuthHandler returns the auth HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		var useCase authUseCase.AuthUseCase
		useCase, err = c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = err
			return
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (authUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUserRepository creates the user repository used by the session flows.
func (c *Container) initAuthUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for auth user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenMaintenanceUseCase creates the token maintenance use case.
func (c *Container) initTokenMaintenanceUseCase() (authUseCase.TokenMaintenanceUseCase, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token maintenance use case: %w", err)
	}

	// Select the appropriate repository based on the database driver
	var repo authUseCase.TokenMaintenanceRepository
	switch c.config.DBDriver {
	case "mysql":
		repo = authRepository.NewMySQLTokenRepository(db)
	case "postgres":
		repo = authRepository.NewPostgreSQLTokenRepository(db)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	return authUseCase.NewTokenMaintenanceUseCase(repo), nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
// When metrics are enabled the use case is wrapped with the recording decorator.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for auth use case: %w", err)
	}

	userRepo, err := c.AuthUserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(c.config, txManager, tokenRepo, userRepo, tokenCodec, passwordService)

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for auth use case: %w", err)
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to create business metrics for auth use case: %w", err)
		}

		useCase = authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
