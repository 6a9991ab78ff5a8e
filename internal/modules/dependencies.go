package modules

import (
	"go.uber.org/zap"

	"github.com/temirov/y2m/internal/catalog"
	"github.com/temirov/y2m/internal/execshell"
	"github.com/temirov/y2m/internal/favorites"
	"github.com/temirov/y2m/internal/gitrepo"
	"github.com/temirov/y2m/internal/workspace"
)

// resolvedDependencies bundles the collaborators a module command runs with.
type resolvedDependencies struct {
	lister            ListingRefresher
	locator           ModuleLocator
	listingReader     ListingReader
	workspaceStore    WorkspaceStore
	repositoryManager GitRepositoryManager
	favoritesProvider FavoritesProvider
}

// resolveShellExecutor returns the provided executor or constructs a shell-backed default.
func resolveShellExecutor(existing *execshell.ShellExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (*execshell.ShellExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	commandRunner := execshell.NewOSCommandRunner()
	return execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
}

// resolveWorkspaceStore returns the provided store or one rooted at the configured directory.
func resolveWorkspaceStore(existing WorkspaceStore, checkoutDirectory string) WorkspaceStore {
	if existing != nil {
		return existing
	}
	return workspace.NewLocalRepositoryStore(checkoutDirectory)
}

// resolveFavoritesProvider returns the provided provider or a store over the configured file.
func resolveFavoritesProvider(existing FavoritesProvider, favoritesFilePath string) (FavoritesProvider, error) {
	if existing != nil {
		return existing, nil
	}
	return favorites.NewStore(favoritesFilePath)
}

// resolveCatalogComponents constructs the cache store, lister, and resolver
// over the configured cache directory unless overrides are supplied.
func resolveCatalogComponents(
	builderDependencies CommandDependencies,
	logger *zap.Logger,
	executor *execshell.ShellExecutor,
	configuration CommandConfiguration,
) (ListingRefresher, ModuleLocator, ListingReader, error) {
	if builderDependencies.Lister != nil && builderDependencies.Locator != nil && builderDependencies.ListingReader != nil {
		return builderDependencies.Lister, builderDependencies.Locator, builderDependencies.ListingReader, nil
	}

	cacheStore, storeError := catalog.NewCacheStore(configuration.CacheDirectory)
	if storeError != nil {
		return nil, nil, nil, storeError
	}

	pageFetcher, fetcherError := catalog.NewCurlPageFetcher(executor)
	if fetcherError != nil {
		return nil, nil, nil, fetcherError
	}

	repositoryLister, listerError := catalog.NewRepositoryLister(logger, pageFetcher, cacheStore, configuration.PageSize)
	if listerError != nil {
		return nil, nil, nil, listerError
	}

	moduleResolver, resolverError := catalog.NewModuleResolver(cacheStore, configuration.organizations())
	if resolverError != nil {
		return nil, nil, nil, resolverError
	}

	lister := builderDependencies.Lister
	if lister == nil {
		lister = repositoryLister
	}
	locator := builderDependencies.Locator
	if locator == nil {
		locator = moduleResolver
	}
	listingReader := builderDependencies.ListingReader
	if listingReader == nil {
		listingReader = cacheStore
	}
	return lister, locator, listingReader, nil
}

// resolveDependencies fills every collaborator slot from the builder overrides
// or constructs the production implementations.
func resolveDependencies(
	builderDependencies CommandDependencies,
	logger *zap.Logger,
	observer execshell.CommandEventObserver,
	configuration CommandConfiguration,
) (resolvedDependencies, error) {
	shellExecutor, executorError := resolveShellExecutor(builderDependencies.ShellExecutor, logger, observer)
	if executorError != nil {
		return resolvedDependencies{}, executorError
	}

	lister, locator, listingReader, catalogError := resolveCatalogComponents(builderDependencies, logger, shellExecutor, configuration)
	if catalogError != nil {
		return resolvedDependencies{}, catalogError
	}

	repositoryManager := builderDependencies.RepositoryManager
	if repositoryManager == nil {
		constructedManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
		if managerError != nil {
			return resolvedDependencies{}, managerError
		}
		repositoryManager = constructedManager
	}

	favoritesProvider, favoritesError := resolveFavoritesProvider(builderDependencies.FavoritesProvider, configuration.FavoritesFile)
	if favoritesError != nil {
		return resolvedDependencies{}, favoritesError
	}

	return resolvedDependencies{
		lister:            lister,
		locator:           locator,
		listingReader:     listingReader,
		workspaceStore:    resolveWorkspaceStore(builderDependencies.WorkspaceStore, configuration.Directory),
		repositoryManager: repositoryManager,
		favoritesProvider: favoritesProvider,
	}, nil
}
