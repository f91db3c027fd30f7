package app

import (
	"fmt"

	eventHTTP "github.com/afga-dev/attendify-api/internal/event/http"
	eventRepository "github.com/afga-dev/attendify-api/internal/event/repository"
	eventUseCase "github.com/afga-dev/attendify-api/internal/event/usecase"
)

// EventRepository returns the event repository based on database driver.
func (c *Container) EventRepository() (eventUseCase.EventRepository, error) {
	var err error
	c.eventRepoInit.Do(func() {
		c.eventRepo, err = c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventRepo"]; exists {
		return nil, storedErr
	}
	return c.eventRepo, nil
}

// EventUseCase returns the event use case.
func (c *Container) EventUseCase() (eventUseCase.UseCase, error) {
	var err error
	c.eventUCInit.Do(func() {
		c.eventUC, err = c.initEventUseCase()
		if err != nil {
			c.initErrors["eventUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventUC"]; exists {
		return nil, storedErr
	}
	return c.eventUC, nil
}

// EventHandler returns the event HTTP handler.
func (c *Container) EventHandler() (*eventHTTP.EventHandler, error) {
	var err error
	c.eventHandlerInit.Do(func() {
		var useCase eventUseCase.UseCase
		useCase, err = c.EventUseCase()
		if err != nil {
			c.initErrors["eventHandler"] = err
			return
		}
		c.eventHandler = eventHTTP.NewEventHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventHandler"]; exists {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

// initEventRepository creates the event repository instance.
func (c *Container) initEventRepository() (eventUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return eventRepository.NewMySQLEventRepository(db), nil
	case "postgres":
		return eventRepository.NewPostgreSQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEventUseCase creates the event use case with all its dependencies.
func (c *Container) initEventUseCase() (eventUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for event use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for event use case: %w", err)
	}

	return eventUseCase.NewEventUseCase(txManager, eventRepo), nil
}
