package catalog

import (
	"sort"
	"strings"

	"github.com/temirov/y2m/internal/hosting"
)

// ModuleLocation identifies the organization and full repository name a
// module short name resolved to.
type ModuleLocation struct {
	Organization   hosting.Organization
	RepositoryName string
	ModuleName     string
}

// ModuleResolver maps module short names onto cached organization listings.
type ModuleResolver struct {
	store         *CacheStore
	organizations []hosting.Organization
}

// NewModuleResolver constructs a resolver over the cache store and the
// organizations in resolution priority order.
func NewModuleResolver(store *CacheStore, organizations []hosting.Organization) (*ModuleResolver, error) {
	if store == nil {
		return nil, ErrStoreNotConfigured
	}
	return &ModuleResolver{store: store, organizations: organizations}, nil
}

// Resolve walks the organizations in priority order and returns the first
// whose merged listing contains the short name or its prefixed form.
func (resolver *ModuleResolver) Resolve(moduleName string) (ModuleLocation, error) {
	trimmedModuleName := strings.TrimSpace(moduleName)
	for _, organization := range resolver.organizations {
		mergedNames, readError := resolver.store.ReadMergedList(organization.Name)
		if readError != nil {
			return ModuleLocation{}, readError
		}

		for _, candidateName := range organization.RepositoryCandidates(trimmedModuleName) {
			if !containsSortedName(mergedNames, candidateName) {
				continue
			}
			return ModuleLocation{
				Organization:   organization,
				RepositoryName: candidateName,
				ModuleName:     organization.ModuleName(candidateName),
			}, nil
		}
	}
	return ModuleLocation{}, UnknownModuleError{ModuleName: trimmedModuleName}
}

// AllModuleNames returns the module short names of every repository across
// the cached listings, sorted and deduplicated.
func (resolver *ModuleResolver) AllModuleNames() ([]string, error) {
	moduleNames := []string{}
	for _, organization := range resolver.organizations {
		mergedNames, readError := resolver.store.ReadMergedList(organization.Name)
		if readError != nil {
			return nil, readError
		}
		for _, repositoryName := range mergedNames {
			moduleNames = append(moduleNames, organization.ModuleName(repositoryName))
		}
	}
	return sortAndDeduplicate(moduleNames), nil
}

func containsSortedName(sortedNames []string, candidateName string) bool {
	insertionIndex := sort.SearchStrings(sortedNames, candidateName)
	return insertionIndex < len(sortedNames) && sortedNames[insertionIndex] == candidateName
}
