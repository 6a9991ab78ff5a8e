package hosting

import (
	"fmt"
	"strings"
)

const (
	yastOrganizationNameConstant      = "yast"
	yastRepositoryPrefixConstant      = "yast-"
	libyuiOrganizationNameConstant    = "libyui"
	libyuiRepositoryPrefixConstant    = "libyui-"
	sshRemoteTemplateConstant         = "git@github.com:%s/%s.git"
	readOnlyRemoteTemplateConstant    = "https://github.com/%s/%s.git"
	repositoryFieldNameConstant       = "repository"
	unknownSchemeMessageConstant      = "unsupported remote scheme"
	schemeErrorTemplateConstant       = "%s: %s"
	requiredValueMessageConstant      = "value required"
	organizationErrorTemplateConstant = "%s: %s"
)

// RemoteScheme enumerates the remote URL layouts supported for checkouts.
type RemoteScheme string

// Supported remote schemes: read-write over ssh and anonymous read-only over https.
const (
	RemoteSchemeSSH      RemoteScheme = RemoteScheme("ssh")
	RemoteSchemeReadOnly RemoteScheme = RemoteScheme("read-only")
)

// Organization identifies a hosting namespace and the prefix shared by its repositories.
type Organization struct {
	Name   string
	Prefix string
}

// UnsupportedSchemeError indicates a remote URL was requested for an unknown scheme.
type UnsupportedSchemeError struct {
	Scheme RemoteScheme
}

// Error describes the unsupported scheme.
func (schemeError UnsupportedSchemeError) Error() string {
	return fmt.Sprintf(schemeErrorTemplateConstant, schemeError.Scheme, unknownSchemeMessageConstant)
}

// InvalidOrganizationError indicates an organization definition is incomplete.
type InvalidOrganizationError struct {
	FieldName string
}

// Error describes the invalid organization definition.
func (organizationError InvalidOrganizationError) Error() string {
	return fmt.Sprintf(organizationErrorTemplateConstant, organizationError.FieldName, requiredValueMessageConstant)
}

// DefaultOrganizations returns the fixed organizations in resolution priority order.
func DefaultOrganizations() []Organization {
	return []Organization{
		{Name: yastOrganizationNameConstant, Prefix: yastRepositoryPrefixConstant},
		{Name: libyuiOrganizationNameConstant, Prefix: libyuiRepositoryPrefixConstant},
	}
}

// ModuleName strips the organization prefix from a full repository name.
func (organization Organization) ModuleName(repositoryName string) string {
	return strings.TrimPrefix(repositoryName, organization.Prefix)
}

// RepositoryCandidates lists the full repository names a module short name may correspond to.
func (organization Organization) RepositoryCandidates(moduleName string) []string {
	trimmedModuleName := strings.TrimSpace(moduleName)
	if strings.HasPrefix(trimmedModuleName, organization.Prefix) {
		return []string{trimmedModuleName}
	}
	return []string{trimmedModuleName, organization.Prefix + trimmedModuleName}
}

// RemoteURL formats the clone URL for a repository under the requested scheme.
func (organization Organization) RemoteURL(scheme RemoteScheme, repositoryName string) (string, error) {
	trimmedRepositoryName := strings.TrimSpace(repositoryName)
	if len(trimmedRepositoryName) == 0 {
		return "", InvalidOrganizationError{FieldName: repositoryFieldNameConstant}
	}

	switch scheme {
	case RemoteSchemeSSH:
		return fmt.Sprintf(sshRemoteTemplateConstant, organization.Name, trimmedRepositoryName), nil
	case RemoteSchemeReadOnly:
		return fmt.Sprintf(readOnlyRemoteTemplateConstant, organization.Name, trimmedRepositoryName), nil
	default:
		return "", UnsupportedSchemeError{Scheme: scheme}
	}
}
