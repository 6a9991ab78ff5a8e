package hosting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/y2m/internal/hosting"
)

const (
	yastOrganizationTestNameConstant    = "yast"
	libyuiOrganizationTestNameConstant  = "libyui"
	moduleNameCaseNameConstant          = "module_name_strips_prefix"
	moduleNameForeignCaseNameConstant   = "module_name_keeps_foreign_prefix"
	candidatesPrefixedCaseNameConstant  = "candidates_for_prefixed_name"
	candidatesShortCaseNameConstant     = "candidates_for_short_name"
	remoteSSHCaseNameConstant           = "ssh_remote"
	remoteReadOnlyCaseNameConstant      = "read_only_remote"
	remoteUnknownSchemeCaseNameConstant = "unknown_scheme"
	remoteEmptyRepositoryCaseName       = "empty_repository"
)

func TestDefaultOrganizationsOrder(testInstance *testing.T) {
	organizations := hosting.DefaultOrganizations()

	require.Len(testInstance, organizations, 2)
	require.Equal(testInstance, yastOrganizationTestNameConstant, organizations[0].Name)
	require.Equal(testInstance, libyuiOrganizationTestNameConstant, organizations[1].Name)
}

func TestOrganizationModuleName(testInstance *testing.T) {
	testCases := []struct {
		name               string
		organization       hosting.Organization
		repositoryName     string
		expectedModuleName string
	}{
		{
			name:               moduleNameCaseNameConstant,
			organization:       hosting.Organization{Name: "yast", Prefix: "yast-"},
			repositoryName:     "yast-core",
			expectedModuleName: "core",
		},
		{
			name:               moduleNameForeignCaseNameConstant,
			organization:       hosting.Organization{Name: "yast", Prefix: "yast-"},
			repositoryName:     "libyui-ncurses",
			expectedModuleName: "libyui-ncurses",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			resolvedModuleName := testCase.organization.ModuleName(testCase.repositoryName)

			require.Equal(subtestInstance, testCase.expectedModuleName, resolvedModuleName)
		})
	}
}

func TestOrganizationRepositoryCandidates(testInstance *testing.T) {
	testCases := []struct {
		name               string
		moduleName         string
		expectedCandidates []string
	}{
		{
			name:               candidatesPrefixedCaseNameConstant,
			moduleName:         "yast-core",
			expectedCandidates: []string{"yast-core"},
		},
		{
			name:               candidatesShortCaseNameConstant,
			moduleName:         "core",
			expectedCandidates: []string{"core", "yast-core"},
		},
	}

	organization := hosting.Organization{Name: "yast", Prefix: "yast-"}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			candidates := organization.RepositoryCandidates(testCase.moduleName)

			require.Equal(subtestInstance, testCase.expectedCandidates, candidates)
		})
	}
}

func TestOrganizationRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name           string
		scheme         hosting.RemoteScheme
		repositoryName string
		expectedURL    string
		expectedError  error
	}{
		{
			name:           remoteSSHCaseNameConstant,
			scheme:         hosting.RemoteSchemeSSH,
			repositoryName: "yast-core",
			expectedURL:    "git@github.com:yast/yast-core.git",
		},
		{
			name:           remoteReadOnlyCaseNameConstant,
			scheme:         hosting.RemoteSchemeReadOnly,
			repositoryName: "yast-core",
			expectedURL:    "https://github.com/yast/yast-core.git",
		},
		{
			name:           remoteUnknownSchemeCaseNameConstant,
			scheme:         hosting.RemoteScheme("carrier-pigeon"),
			repositoryName: "yast-core",
			expectedError:  hosting.UnsupportedSchemeError{Scheme: hosting.RemoteScheme("carrier-pigeon")},
		},
		{
			name:          remoteEmptyRepositoryCaseName,
			scheme:        hosting.RemoteSchemeSSH,
			expectedError: hosting.InvalidOrganizationError{FieldName: "repository"},
		},
	}

	organization := hosting.Organization{Name: "yast", Prefix: "yast-"}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			remoteURL, remoteError := organization.RemoteURL(testCase.scheme, testCase.repositoryName)

			if testCase.expectedError != nil {
				require.ErrorIs(subtestInstance, remoteError, testCase.expectedError)
				return
			}
			require.NoError(subtestInstance, remoteError)
			require.Equal(subtestInstance, testCase.expectedURL, remoteURL)
		})
	}
}
