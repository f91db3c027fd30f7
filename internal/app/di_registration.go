package app

import (
	"fmt"

	registrationHTTP "github.com/afga-dev/attendify-api/internal/registration/http"
	registrationRepository "github.com/afga-dev/attendify-api/internal/registration/repository"
	registrationUseCase "github.com/afga-dev/attendify-api/internal/registration/usecase"
)

// RegistrationRepository returns the registration repository based on database driver.
func (c *Container) RegistrationRepository() (registrationUseCase.RegistrationRepository, error) {
	var err error
	c.registrationRepoInit.Do(func() {
		c.registrationRepo, err = c.initRegistrationRepository()
		if err != nil {
			c.initErrors["registrationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationRepo"]; exists {
		return nil, storedErr
	}
	return c.registrationRepo, nil
}

// RegistrationUseCase returns the registration use case.
func (c *Container) RegistrationUseCase() (registrationUseCase.UseCase, error) {
	var err error
	c.registrationUCInit.Do(func() {
		c.registrationUC, err = c.initRegistrationUseCase()
		if err != nil {
			c.initErrors["registrationUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationUC"]; exists {
		return nil, storedErr
	}
	return c.registrationUC, nil
}

// RegistrationHandler returns the registration HTTP handler.
func (c *Container) RegistrationHandler() (*registrationHTTP.RegistrationHandler, error) {
	var err error
	c.registrationHandlerInit.Do(func() {
		var useCase registrationUseCase.UseCase
		useCase, err = c.RegistrationUseCase()
		if err != nil {
			c.initErrors["registrationHandler"] = err
			return
		}
		c.registrationHandler = registrationHTTP.NewRegistrationHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationHandler"]; exists {
		return nil, storedErr
	}
	return c.registrationHandler, nil
}

// initRegistrationRepository creates the registration repository instance.
func (c *Container) initRegistrationRepository() (registrationUseCase.RegistrationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for registration repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return registrationRepository.NewMySQLRegistrationRepository(db), nil
	case "postgres":
		return registrationRepository.NewPostgreSQLRegistrationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRegistrationUseCase creates the registration use case. The event
// repository doubles as the event reader the registration workflow consults
// for status and capacity.
func (c *Container) initRegistrationUseCase() (registrationUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for registration use case: %w", err)
	}

	registrationRepo, err := c.RegistrationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration repository for registration use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for registration use case: %w", err)
	}

	return registrationUseCase.NewRegistrationUseCase(txManager, registrationRepo, eventRepo), nil
}
