package modules_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/y2m/internal/catalog"
	"github.com/temirov/y2m/internal/hosting"
	"github.com/temirov/y2m/internal/modules"
)

const (
	workspaceRootConstant           = "/workspace"
	coreModuleNameConstant          = "core"
	networkModuleNameConstant       = "network"
	storageModuleNameConstant       = "storage"
	unknownModuleNameConstant       = "does-not-exist"
	coreRepositoryNameConstant      = "yast-core"
	networkRepositoryNameConstant   = "yast-network"
	storageRepositoryNameConstant   = "yast-storage"
	checkoutBranchNameConstant      = "SLE-15-SP6"
	fullWorkingTreeEntryCount       = 5
	cloneOperationPrefixConstant    = "clone "
	pullOperationPrefixConstant     = "pull "
	checkoutOperationPrefixConstant = "checkout "
)

var (
	yastTestOrganization   = hosting.Organization{Name: "yast", Prefix: "yast-"}
	libyuiTestOrganization = hosting.Organization{Name: "libyui", Prefix: "libyui-"}
	bothTestOrganizations  = []hosting.Organization{yastTestOrganization, libyuiTestOrganization}
)

type stubListingRefresher struct {
	fetchedOrganizations []string
	fetchFailure         error
}

func (refresher *stubListingRefresher) FetchOrganization(_ context.Context, organization hosting.Organization) error {
	refresher.fetchedOrganizations = append(refresher.fetchedOrganizations, organization.Name)
	return refresher.fetchFailure
}

type stubModuleLocator struct {
	locationsByName map[string]catalog.ModuleLocation
	allModuleNames  []string
}

func (locator *stubModuleLocator) Resolve(moduleName string) (catalog.ModuleLocation, error) {
	if moduleLocation, locationFound := locator.locationsByName[moduleName]; locationFound {
		return moduleLocation, nil
	}
	return catalog.ModuleLocation{}, catalog.UnknownModuleError{ModuleName: moduleName}
}

func (locator *stubModuleLocator) AllModuleNames() ([]string, error) {
	return locator.allModuleNames, nil
}

type stubListingReader struct {
	mergedListsByOrganization map[string][]string
}

func (reader *stubListingReader) ReadMergedList(organizationName string) ([]string, error) {
	return reader.mergedListsByOrganization[organizationName], nil
}

type stubWorkspaceStore struct {
	existingModules     map[string]bool
	topLevelEntryCounts map[string]int
	localModules        []string
	removedModules      []string
}

func (store *stubWorkspaceStore) ListModules() ([]string, error) {
	return store.localModules, nil
}

func (store *stubWorkspaceStore) ModulePath(moduleName string) string {
	return filepath.Join(workspaceRootConstant, moduleName)
}

func (store *stubWorkspaceStore) ModuleExists(moduleName string) bool {
	return store.existingModules[moduleName]
}

func (store *stubWorkspaceStore) RemoveModule(moduleName string) error {
	store.removedModules = append(store.removedModules, moduleName)
	delete(store.existingModules, moduleName)
	return nil
}

func (store *stubWorkspaceStore) CountTopLevelEntries(moduleName string) (int, error) {
	if entryCount, countKnown := store.topLevelEntryCounts[moduleName]; countKnown {
		return entryCount, nil
	}
	return 0, errors.New("module directory missing")
}

type stubRepositoryManager struct {
	operations    []string
	cloneFailures map[string]error
}

func (manager *stubRepositoryManager) CloneShallow(_ context.Context, remoteURL string, targetDirectory string) error {
	manager.operations = append(manager.operations, cloneOperationPrefixConstant+remoteURL+" "+targetDirectory)
	if manager.cloneFailures != nil {
		return manager.cloneFailures[targetDirectory]
	}
	return nil
}

func (manager *stubRepositoryManager) ConfigureRemoteFetch(_ context.Context, repositoryPath string) error {
	manager.operations = append(manager.operations, "configure "+repositoryPath)
	return nil
}

func (manager *stubRepositoryManager) FetchAll(_ context.Context, repositoryPath string) error {
	manager.operations = append(manager.operations, "fetch "+repositoryPath)
	return nil
}

func (manager *stubRepositoryManager) PullUnshallow(_ context.Context, repositoryPath string) error {
	manager.operations = append(manager.operations, "unshallow "+repositoryPath)
	return nil
}

func (manager *stubRepositoryManager) Pull(_ context.Context, repositoryPath string) error {
	manager.operations = append(manager.operations, pullOperationPrefixConstant+repositoryPath)
	return nil
}

func (manager *stubRepositoryManager) Checkout(_ context.Context, repositoryPath string, reference string) error {
	manager.operations = append(manager.operations, checkoutOperationPrefixConstant+repositoryPath+" "+reference)
	return nil
}

type stubFavoritesProvider struct {
	favoriteModules []string
}

func (provider *stubFavoritesProvider) Load() ([]string, error) {
	return provider.favoriteModules, nil
}

type serviceFixture struct {
	service        *modules.Service
	lister         *stubListingRefresher
	workspaceStore *stubWorkspaceStore
	manager        *stubRepositoryManager
	outputBuffer   *bytes.Buffer
	errorBuffer    *bytes.Buffer
}

func yastModuleLocation(moduleName string, repositoryName string) catalog.ModuleLocation {
	return catalog.ModuleLocation{Organization: yastTestOrganization, RepositoryName: repositoryName, ModuleName: moduleName}
}

func newServiceFixture(locator *stubModuleLocator, reader *stubListingReader, workspaceStore *stubWorkspaceStore, favoritesProvider *stubFavoritesProvider) *serviceFixture {
	lister := &stubListingRefresher{}
	manager := &stubRepositoryManager{}
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := modules.NewService(
		zap.NewNop(),
		lister,
		locator,
		reader,
		workspaceStore,
		manager,
		favoritesProvider,
		bothTestOrganizations,
		outputBuffer,
		errorBuffer,
	)
	return &serviceFixture{
		service:        service,
		lister:         lister,
		workspaceStore: workspaceStore,
		manager:        manager,
		outputBuffer:   outputBuffer,
		errorBuffer:    errorBuffer,
	}
}

func defaultLocator() *stubModuleLocator {
	return &stubModuleLocator{
		locationsByName: map[string]catalog.ModuleLocation{
			coreModuleNameConstant:        yastModuleLocation(coreModuleNameConstant, coreRepositoryNameConstant),
			coreRepositoryNameConstant:    yastModuleLocation(coreModuleNameConstant, coreRepositoryNameConstant),
			networkModuleNameConstant:     yastModuleLocation(networkModuleNameConstant, networkRepositoryNameConstant),
			networkRepositoryNameConstant: yastModuleLocation(networkModuleNameConstant, networkRepositoryNameConstant),
			storageModuleNameConstant:     yastModuleLocation(storageModuleNameConstant, storageRepositoryNameConstant),
		},
		allModuleNames: []string{coreModuleNameConstant, networkModuleNameConstant},
	}
}

func operationsWithPrefix(operations []string, operationPrefix string) []string {
	matchingOperations := []string{}
	for _, operation := range operations {
		if strings.HasPrefix(operation, operationPrefix) {
			matchingOperations = append(matchingOperations, operation)
		}
	}
	return matchingOperations
}

func TestCloneFavoritesAttemptsExactlyConfiguredModules(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules: map[string]bool{},
		topLevelEntryCounts: map[string]int{
			coreModuleNameConstant:    fullWorkingTreeEntryCount,
			networkModuleNameConstant: fullWorkingTreeEntryCount,
		},
	}
	favoritesProvider := &stubFavoritesProvider{favoriteModules: []string{coreModuleNameConstant, networkModuleNameConstant}}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, favoritesProvider)

	cloneError := fixture.service.Clone(context.Background(), modules.ParseModuleSelection([]string{"FAV"}), hosting.RemoteSchemeSSH)

	require.NoError(testInstance, cloneError)
	require.Equal(testInstance, []string{"yast", "libyui"}, fixture.lister.fetchedOrganizations)

	cloneOperations := operationsWithPrefix(fixture.manager.operations, cloneOperationPrefixConstant)
	require.Equal(testInstance, []string{
		"clone git@github.com:yast/yast-core.git " + filepath.Join(workspaceRootConstant, coreModuleNameConstant),
		"clone git@github.com:yast/yast-network.git " + filepath.Join(workspaceRootConstant, networkModuleNameConstant),
	}, cloneOperations)

	corePath := filepath.Join(workspaceRootConstant, coreModuleNameConstant)
	require.Contains(testInstance, fixture.manager.operations, "configure "+corePath)
	require.Contains(testInstance, fixture.manager.operations, "fetch "+corePath)
	require.Contains(testInstance, fixture.manager.operations, "unshallow "+corePath)
}

func TestCloneAllSkipsExistingCheckouts(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules:     map[string]bool{coreModuleNameConstant: true},
		topLevelEntryCounts: map[string]int{networkModuleNameConstant: fullWorkingTreeEntryCount},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	cloneError := fixture.service.Clone(context.Background(), modules.ParseModuleSelection([]string{"ALL"}), hosting.RemoteSchemeSSH)

	require.NoError(testInstance, cloneError)
	require.Contains(testInstance, fixture.errorBuffer.String(), coreModuleNameConstant)

	cloneOperations := operationsWithPrefix(fixture.manager.operations, cloneOperationPrefixConstant)
	require.Len(testInstance, cloneOperations, 1)
	require.Contains(testInstance, cloneOperations[0], networkRepositoryNameConstant)
}

func TestCloneRemovesSingleEntryWorkingTree(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules:     map[string]bool{},
		topLevelEntryCounts: map[string]int{coreModuleNameConstant: 1},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	cloneError := fixture.service.Clone(context.Background(), modules.ParseModuleSelection([]string{coreModuleNameConstant}), hosting.RemoteSchemeSSH)

	require.NoError(testInstance, cloneError)
	require.Equal(testInstance, []string{coreModuleNameConstant}, fixture.workspaceStore.removedModules)
	require.Empty(testInstance, fixture.errorBuffer.String())
	require.Empty(testInstance, operationsWithPrefix(fixture.manager.operations, "configure "))
	require.Empty(testInstance, operationsWithPrefix(fixture.manager.operations, "unshallow "))
}

func TestCloneUnknownModuleWarnsAndContinues(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules:     map[string]bool{},
		topLevelEntryCounts: map[string]int{networkModuleNameConstant: fullWorkingTreeEntryCount},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	cloneError := fixture.service.Clone(context.Background(), modules.ParseModuleSelection([]string{unknownModuleNameConstant, networkModuleNameConstant}), hosting.RemoteSchemeSSH)

	require.NoError(testInstance, cloneError)
	require.Contains(testInstance, fixture.errorBuffer.String(), unknownModuleNameConstant)

	cloneOperations := operationsWithPrefix(fixture.manager.operations, cloneOperationPrefixConstant)
	require.Len(testInstance, cloneOperations, 1)
	require.Contains(testInstance, cloneOperations[0], networkRepositoryNameConstant)
}

func TestReadOnlyCloneUsesAnonymousRemote(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules:     map[string]bool{},
		topLevelEntryCounts: map[string]int{coreModuleNameConstant: fullWorkingTreeEntryCount},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	cloneError := fixture.service.Clone(context.Background(), modules.ParseModuleSelection([]string{coreModuleNameConstant}), hosting.RemoteSchemeReadOnly)

	require.NoError(testInstance, cloneError)
	cloneOperations := operationsWithPrefix(fixture.manager.operations, cloneOperationPrefixConstant)
	require.Len(testInstance, cloneOperations, 1)
	require.Contains(testInstance, cloneOperations[0], "https://github.com/yast/yast-core.git")
}

func TestPullWithoutArgumentsUpdatesEveryLocalModule(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules: map[string]bool{coreModuleNameConstant: true, networkModuleNameConstant: true},
		localModules:    []string{coreModuleNameConstant, networkModuleNameConstant},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	pullError := fixture.service.Pull(context.Background(), modules.ParseModuleSelection(nil))

	require.NoError(testInstance, pullError)
	require.Empty(testInstance, fixture.lister.fetchedOrganizations)
	require.Equal(testInstance, []string{
		pullOperationPrefixConstant + filepath.Join(workspaceRootConstant, coreModuleNameConstant),
		pullOperationPrefixConstant + filepath.Join(workspaceRootConstant, networkModuleNameConstant),
	}, fixture.manager.operations)
}

func TestPullExplicitModulesWarnsWhenNotCheckedOut(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules: map[string]bool{coreModuleNameConstant: true},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	pullError := fixture.service.Pull(context.Background(), modules.ParseModuleSelection([]string{coreRepositoryNameConstant, storageModuleNameConstant}))

	require.NoError(testInstance, pullError)
	require.Equal(testInstance, []string{"yast", "libyui"}, fixture.lister.fetchedOrganizations)
	require.Contains(testInstance, fixture.errorBuffer.String(), storageModuleNameConstant)
	require.Equal(testInstance, []string{
		pullOperationPrefixConstant + filepath.Join(workspaceRootConstant, coreModuleNameConstant),
	}, fixture.manager.operations)
}

func TestCheckoutEmptyFavoritesPerformsNoOperations(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{existingModules: map[string]bool{coreModuleNameConstant: true}}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	checkoutError := fixture.service.Checkout(context.Background(), checkoutBranchNameConstant, modules.ParseModuleSelection([]string{"FAV"}))

	require.NoError(testInstance, checkoutError)
	require.Empty(testInstance, fixture.manager.operations)
	require.Empty(testInstance, fixture.lister.fetchedOrganizations)
}

func TestCheckoutWithoutModulesSwitchesEveryLocalModule(testInstance *testing.T) {
	workspaceStore := &stubWorkspaceStore{
		existingModules: map[string]bool{coreModuleNameConstant: true, networkModuleNameConstant: true},
		localModules:    []string{coreModuleNameConstant, networkModuleNameConstant},
	}
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, workspaceStore, &stubFavoritesProvider{})

	checkoutError := fixture.service.Checkout(context.Background(), checkoutBranchNameConstant, modules.ParseModuleSelection(nil))

	require.NoError(testInstance, checkoutError)
	require.Equal(testInstance, []string{
		checkoutOperationPrefixConstant + filepath.Join(workspaceRootConstant, coreModuleNameConstant) + " " + checkoutBranchNameConstant,
		checkoutOperationPrefixConstant + filepath.Join(workspaceRootConstant, networkModuleNameConstant) + " " + checkoutBranchNameConstant,
	}, fixture.manager.operations)
}

func TestListPrintsOrganizationListings(testInstance *testing.T) {
	reader := &stubListingReader{mergedListsByOrganization: map[string][]string{
		"yast":   {coreRepositoryNameConstant, networkRepositoryNameConstant},
		"libyui": {"libyui-ncurses"},
	}}
	fixture := newServiceFixture(defaultLocator(), reader, &stubWorkspaceStore{}, &stubFavoritesProvider{})

	listError := fixture.service.List(context.Background())

	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"yast", "libyui"}, fixture.lister.fetchedOrganizations)

	printedOutput := fixture.outputBuffer.String()
	require.Contains(testInstance, printedOutput, "yast:\n")
	require.Contains(testInstance, printedOutput, "libyui:\n")
	require.Contains(testInstance, printedOutput, coreRepositoryNameConstant+" "+networkRepositoryNameConstant)
	for _, outputLine := range strings.Split(printedOutput, "\n") {
		require.LessOrEqual(testInstance, len(outputLine), 80)
	}
}

func TestListFailsWhenListingRefreshFails(testInstance *testing.T) {
	fixture := newServiceFixture(defaultLocator(), &stubListingReader{}, &stubWorkspaceStore{}, &stubFavoritesProvider{})
	fixture.lister.fetchFailure = catalog.ListingFetchError{OrganizationName: "yast", PageNumber: 1, Cause: errors.New("network down")}

	listError := fixture.service.List(context.Background())

	require.Error(testInstance, listError)
	require.IsType(testInstance, catalog.ListingFetchError{}, listError)
}
