package modules

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/y2m/internal/catalog"
	"github.com/temirov/y2m/internal/hosting"
)

const (
	listLineWidthConstant             = 80
	organizationHeaderTemplate        = "%s:\n"
	listLineTemplateConstant          = "%s\n"
	unknownModuleWarningTemplate      = "Warning: module %s is not in any organization listing, skipping\n"
	alreadyCheckedOutWarningTemplate  = "Warning: %s is already checked out, skipping\n"
	notCheckedOutWarningTemplate      = "Warning: %s is not checked out, skipping\n"
	gitOperationWarningTemplate       = "Warning: git operation for %s failed (%v), skipping\n"
	upstreamRemovedLogMessageConstant = "upstream module removed, checkout discarded"
	moduleLogFieldConstant            = "module"
	singleEntryThresholdConstant      = 1
)

// Service carries out the module commands against the cached listings, the
// checkout directory, and the git client.
type Service struct {
	logger            *zap.Logger
	lister            ListingRefresher
	locator           ModuleLocator
	listingReader     ListingReader
	workspaceStore    WorkspaceStore
	repositoryManager GitRepositoryManager
	favoritesProvider FavoritesProvider
	organizations     []hosting.Organization
	outputWriter      io.Writer
	errorWriter       io.Writer
}

// NewService constructs a module command service.
func NewService(
	logger *zap.Logger,
	lister ListingRefresher,
	locator ModuleLocator,
	listingReader ListingReader,
	workspaceStore WorkspaceStore,
	repositoryManager GitRepositoryManager,
	favoritesProvider FavoritesProvider,
	organizations []hosting.Organization,
	outputWriter io.Writer,
	errorWriter io.Writer,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:            logger,
		lister:            lister,
		locator:           locator,
		listingReader:     listingReader,
		workspaceStore:    workspaceStore,
		repositoryManager: repositoryManager,
		favoritesProvider: favoritesProvider,
		organizations:     organizations,
		outputWriter:      outputWriter,
		errorWriter:       errorWriter,
	}
}

// List refreshes both organization listings and prints every repository name,
// word wrapped, grouped by organization.
func (service *Service) List(executionContext context.Context) error {
	if refreshError := service.refreshListings(executionContext); refreshError != nil {
		return refreshError
	}

	for _, organization := range service.organizations {
		repositoryNames, readError := service.listingReader.ReadMergedList(organization.Name)
		if readError != nil {
			return readError
		}

		fmt.Fprintf(service.outputWriter, organizationHeaderTemplate, organization.Name)
		for _, wrappedLine := range wrapNames(repositoryNames, listLineWidthConstant) {
			fmt.Fprintf(service.outputWriter, listLineTemplateConstant, wrappedLine)
		}
	}
	return nil
}

// Clone checks out every module in the selection that is not already present,
// using the remote scheme the command variant dictates.
func (service *Service) Clone(executionContext context.Context, selection ModuleSelection, scheme hosting.RemoteScheme) error {
	if refreshError := service.refreshListings(executionContext); refreshError != nil {
		return refreshError
	}

	moduleNames, expansionError := service.expandCloneSelection(selection)
	if expansionError != nil {
		return expansionError
	}

	for _, moduleName := range moduleNames {
		moduleLocation, resolveError := service.resolveModule(moduleName)
		if resolveError != nil {
			return resolveError
		}
		if len(moduleLocation.ModuleName) == 0 {
			continue
		}

		if service.workspaceStore.ModuleExists(moduleLocation.ModuleName) {
			fmt.Fprintf(service.errorWriter, alreadyCheckedOutWarningTemplate, moduleLocation.ModuleName)
			continue
		}

		remoteURL, remoteError := moduleLocation.Organization.RemoteURL(scheme, moduleLocation.RepositoryName)
		if remoteError != nil {
			return remoteError
		}

		if cloneError := service.cloneModule(executionContext, moduleLocation.ModuleName, remoteURL); cloneError != nil {
			fmt.Fprintf(service.errorWriter, gitOperationWarningTemplate, moduleLocation.ModuleName, cloneError)
		}
	}
	return nil
}

// Pull updates every module in the selection that is checked out locally.
func (service *Service) Pull(executionContext context.Context, selection ModuleSelection) error {
	moduleNames, expansionError := service.expandLocalSelection(executionContext, selection)
	if expansionError != nil {
		return expansionError
	}

	for _, moduleName := range moduleNames {
		if !service.workspaceStore.ModuleExists(moduleName) {
			fmt.Fprintf(service.errorWriter, notCheckedOutWarningTemplate, moduleName)
			continue
		}
		if pullError := service.repositoryManager.Pull(executionContext, service.workspaceStore.ModulePath(moduleName)); pullError != nil {
			fmt.Fprintf(service.errorWriter, gitOperationWarningTemplate, moduleName, pullError)
		}
	}
	return nil
}

// Checkout switches every module in the selection to the given branch or tag.
func (service *Service) Checkout(executionContext context.Context, reference string, selection ModuleSelection) error {
	moduleNames, expansionError := service.expandLocalSelection(executionContext, selection)
	if expansionError != nil {
		return expansionError
	}

	for _, moduleName := range moduleNames {
		if !service.workspaceStore.ModuleExists(moduleName) {
			fmt.Fprintf(service.errorWriter, notCheckedOutWarningTemplate, moduleName)
			continue
		}
		if checkoutError := service.repositoryManager.Checkout(executionContext, service.workspaceStore.ModulePath(moduleName), reference); checkoutError != nil {
			fmt.Fprintf(service.errorWriter, gitOperationWarningTemplate, moduleName, checkoutError)
		}
	}
	return nil
}

func (service *Service) refreshListings(executionContext context.Context) error {
	for _, organization := range service.organizations {
		if fetchError := service.lister.FetchOrganization(executionContext, organization); fetchError != nil {
			return fetchError
		}
	}
	return nil
}

// expandCloneSelection turns the command-line module set into the list of
// names a clone command should attempt.
func (service *Service) expandCloneSelection(selection ModuleSelection) ([]string, error) {
	switch selection.Kind {
	case SelectionAll:
		return service.locator.AllModuleNames()
	case SelectionFavorites:
		return service.favoritesProvider.Load()
	default:
		return selection.ModuleNames, nil
	}
}

// expandLocalSelection turns the module set of a pull or checkout command into
// checkout directory names. Explicit names and favorites are normalized
// through the listings; an absent set means every checked out module.
func (service *Service) expandLocalSelection(executionContext context.Context, selection ModuleSelection) ([]string, error) {
	switch selection.Kind {
	case SelectionLocal, SelectionAll:
		return service.workspaceStore.ListModules()
	case SelectionFavorites:
		favoriteNames, favoritesError := service.favoritesProvider.Load()
		if favoritesError != nil {
			return nil, favoritesError
		}
		return service.normalizeModuleNames(executionContext, favoriteNames)
	default:
		return service.normalizeModuleNames(executionContext, selection.ModuleNames)
	}
}

func (service *Service) normalizeModuleNames(executionContext context.Context, moduleNames []string) ([]string, error) {
	if len(moduleNames) == 0 {
		return nil, nil
	}
	if refreshError := service.refreshListings(executionContext); refreshError != nil {
		return nil, refreshError
	}

	normalizedNames := make([]string, 0, len(moduleNames))
	for _, moduleName := range moduleNames {
		moduleLocation, resolveError := service.resolveModule(moduleName)
		if resolveError != nil {
			return nil, resolveError
		}
		if len(moduleLocation.ModuleName) == 0 {
			continue
		}
		normalizedNames = append(normalizedNames, moduleLocation.ModuleName)
	}
	return normalizedNames, nil
}

// resolveModule looks a short name up in the listings, reporting an unknown
// module as a warning and an empty location so batch loops continue.
func (service *Service) resolveModule(moduleName string) (catalog.ModuleLocation, error) {
	moduleLocation, resolveError := service.locator.Resolve(moduleName)
	if resolveError == nil {
		return moduleLocation, nil
	}

	var unknownError catalog.UnknownModuleError
	if errors.As(resolveError, &unknownError) {
		fmt.Fprintf(service.errorWriter, unknownModuleWarningTemplate, moduleName)
		return catalog.ModuleLocation{}, nil
	}
	return catalog.ModuleLocation{}, resolveError
}

// cloneModule runs the shallow clone and full-history conversion sequence.
// A working tree with at most one top-level entry means the upstream module
// was removed, so the directory is discarded without a warning.
func (service *Service) cloneModule(executionContext context.Context, moduleName string, remoteURL string) error {
	targetPath := service.workspaceStore.ModulePath(moduleName)
	cloneError := service.repositoryManager.CloneShallow(executionContext, remoteURL, targetPath)

	entryCount, countError := service.workspaceStore.CountTopLevelEntries(moduleName)
	if countError == nil && entryCount <= singleEntryThresholdConstant {
		if removeError := service.workspaceStore.RemoveModule(moduleName); removeError != nil {
			return removeError
		}
		service.logger.Debug(upstreamRemovedLogMessageConstant, zap.String(moduleLogFieldConstant, moduleName))
		return nil
	}
	if cloneError != nil {
		return cloneError
	}
	if countError != nil {
		return countError
	}

	if configureError := service.repositoryManager.ConfigureRemoteFetch(executionContext, targetPath); configureError != nil {
		return configureError
	}
	if fetchError := service.repositoryManager.FetchAll(executionContext, targetPath); fetchError != nil {
		return fetchError
	}
	return service.repositoryManager.PullUnshallow(executionContext, targetPath)
}

// wrapNames joins names into lines no wider than the requested width.
func wrapNames(names []string, lineWidth int) []string {
	wrappedLines := []string{}
	currentLine := strings.Builder{}
	for _, name := range names {
		if currentLine.Len() > 0 && currentLine.Len()+len(name)+1 > lineWidth {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
		}
		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(name)
	}
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}
	return wrappedLines
}
