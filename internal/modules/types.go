package modules

import (
	"context"

	"github.com/temirov/y2m/internal/catalog"
	"github.com/temirov/y2m/internal/hosting"
)

// ListingRefresher refreshes the cached repository listing for an organization.
type ListingRefresher interface {
	FetchOrganization(executionContext context.Context, organization hosting.Organization) error
}

// ModuleLocator resolves module short names against the cached listings.
type ModuleLocator interface {
	Resolve(moduleName string) (catalog.ModuleLocation, error)
	AllModuleNames() ([]string, error)
}

// ListingReader exposes the merged repository list of an organization.
type ListingReader interface {
	ReadMergedList(organizationName string) ([]string, error)
}

// WorkspaceStore exposes the checkout directory operations used by the services.
type WorkspaceStore interface {
	ListModules() ([]string, error)
	ModulePath(moduleName string) string
	ModuleExists(moduleName string) bool
	RemoveModule(moduleName string) error
	CountTopLevelEntries(moduleName string) (int, error)
}

// GitRepositoryManager exposes the git operations used by the services.
type GitRepositoryManager interface {
	CloneShallow(executionContext context.Context, remoteURL string, targetDirectory string) error
	ConfigureRemoteFetch(executionContext context.Context, repositoryPath string) error
	FetchAll(executionContext context.Context, repositoryPath string) error
	PullUnshallow(executionContext context.Context, repositoryPath string) error
	Pull(executionContext context.Context, repositoryPath string) error
	Checkout(executionContext context.Context, repositoryPath string, reference string) error
}

// FavoritesProvider loads the user's favorite module names.
type FavoritesProvider interface {
	Load() ([]string, error)
}
