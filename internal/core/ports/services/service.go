package services

// ServiceContainer holds instances of all the application services.
// Handlers reach services only through this container.
type ServiceContainer struct {
	Posting  PostingSvcFacade
	Resolver AccountResolverSvc
}
