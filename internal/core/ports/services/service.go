package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// Handlers and the terminal front end receive it instead of concrete services.
type ServiceContainer struct {
	ConversionForm ConversionFormSvcFacade
}

// Starter is implemented by services that restore persisted data at startup.
type Starter interface {
	Start(ctx context.Context) error
}
