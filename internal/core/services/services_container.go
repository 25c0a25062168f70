package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Services that implement portssvc.Starter still need to be started by the caller.
func NewServiceContainer(repos portsrepo.RepositoryProvider, logger *slog.Logger, opts ...PersistenceGatewayOption) *portssvc.ServiceContainer {
	gatewayOpts := append([]PersistenceGatewayOption{WithGatewayLogger(logger)}, opts...)
	gateway := NewPersistenceGateway(repos.Store, gatewayOpts...)

	return &portssvc.ServiceContainer{
		ConversionForm: NewConversionFormService(gateway, logger),
	}
}
