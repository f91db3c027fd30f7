package app

import (
	"fmt"

	categoryHTTP "github.com/afga-dev/attendify-api/internal/category/http"
	categoryRepository "github.com/afga-dev/attendify-api/internal/category/repository"
	categoryUseCase "github.com/afga-dev/attendify-api/internal/category/usecase"
)

// CategoryRepository returns the category repository based on database driver.
func (c *Container) CategoryRepository() (categoryUseCase.CategoryRepository, error) {
	var err error
	c.categoryRepoInit.Do(func() {
		c.categoryRepo, err = c.initCategoryRepository()
		if err != nil {
			c.initErrors["categoryRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["categoryRepo"]; exists {
		return nil, storedErr
	}
	return c.categoryRepo, nil
}

// CategoryUseCase returns the category use case.
func (c *Container) CategoryUseCase() (categoryUseCase.UseCase, error) {
	var err error
	c.categoryUCInit.Do(func() {
		var repo categoryUseCase.CategoryRepository
		repo, err = c.CategoryRepository()
		if err != nil {
			c.initErrors["categoryUC"] = err
			return
		}
		c.categoryUC = categoryUseCase.NewCategoryUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["categoryUC"]; exists {
		return nil, storedErr
	}
	return c.categoryUC, nil
}

// CategoryHandler returns the category HTTP handler.
func (c *Container) CategoryHandler() (*categoryHTTP.CategoryHandler, error) {
	var err error
	c.categoryHandlerInit.Do(func() {
		var useCase categoryUseCase.UseCase
		useCase, err = c.CategoryUseCase()
		if err != nil {
			c.initErrors["categoryHandler"] = err
			return
		}
		c.categoryHandler = categoryHTTP.NewCategoryHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["categoryHandler"]; exists {
		return nil, storedErr
	}
	return c.categoryHandler, nil
}

// initCategoryRepository creates the category repository instance.
func (c *Container) initCategoryRepository() (categoryUseCase.CategoryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for category repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return categoryRepository.NewMySQLCategoryRepository(db), nil
	case "postgres":
		return categoryRepository.NewPostgreSQLCategoryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
