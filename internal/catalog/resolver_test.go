package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/y2m/internal/catalog"
	"github.com/temirov/y2m/internal/hosting"
)

const (
	resolveShortNameCaseConstant    = "short_name"
	resolveFullNameCaseConstant     = "full_name"
	resolveSecondOrgCaseConstant    = "second_organization"
	resolvePriorityCaseConstant     = "priority_order_wins"
	resolverUnknownModuleConstant   = "does-not-exist"
)

func newResolverFixture(testInstance *testing.T) (*catalog.CacheStore, *catalog.ModuleResolver) {
	store := newTestStore(testInstance)
	require.NoError(testInstance, store.WriteMergedList("yast", []string{"yast-core", "yast-network", "yast-ruby-bindings"}))
	require.NoError(testInstance, store.WriteMergedList("libyui", []string{"libyui-ncurses", "libyui-ruby-bindings"}))

	resolver, constructionError := catalog.NewModuleResolver(store, hosting.DefaultOrganizations())
	require.NoError(testInstance, constructionError)
	return store, resolver
}

func TestModuleResolverResolve(testInstance *testing.T) {
	_, resolver := newResolverFixture(testInstance)

	testCases := []struct {
		name                     string
		moduleName               string
		expectedOrganizationName string
		expectedRepositoryName   string
		expectedModuleName       string
	}{
		{
			name:                     resolveShortNameCaseConstant,
			moduleName:               "core",
			expectedOrganizationName: "yast",
			expectedRepositoryName:   "yast-core",
			expectedModuleName:       "core",
		},
		{
			name:                     resolveFullNameCaseConstant,
			moduleName:               "yast-core",
			expectedOrganizationName: "yast",
			expectedRepositoryName:   "yast-core",
			expectedModuleName:       "core",
		},
		{
			name:                     resolveSecondOrgCaseConstant,
			moduleName:               "ncurses",
			expectedOrganizationName: "libyui",
			expectedRepositoryName:   "libyui-ncurses",
			expectedModuleName:       "ncurses",
		},
		{
			name:                     resolvePriorityCaseConstant,
			moduleName:               "ruby-bindings",
			expectedOrganizationName: "yast",
			expectedRepositoryName:   "yast-ruby-bindings",
			expectedModuleName:       "ruby-bindings",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			moduleLocation, resolveError := resolver.Resolve(testCase.moduleName)

			require.NoError(subtestInstance, resolveError)
			require.Equal(subtestInstance, testCase.expectedOrganizationName, moduleLocation.Organization.Name)
			require.Equal(subtestInstance, testCase.expectedRepositoryName, moduleLocation.RepositoryName)
			require.Equal(subtestInstance, testCase.expectedModuleName, moduleLocation.ModuleName)
		})
	}
}

func TestModuleResolverUnknownModule(testInstance *testing.T) {
	_, resolver := newResolverFixture(testInstance)

	_, resolveError := resolver.Resolve(resolverUnknownModuleConstant)

	require.Error(testInstance, resolveError)
	require.IsType(testInstance, catalog.UnknownModuleError{}, resolveError)
}

func TestModuleResolverAllModuleNames(testInstance *testing.T) {
	_, resolver := newResolverFixture(testInstance)

	moduleNames, listError := resolver.AllModuleNames()

	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"core", "ncurses", "network", "ruby-bindings"}, moduleNames)
}
