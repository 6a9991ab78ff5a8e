package modules

import (
	"strings"

	"github.com/temirov/y2m/internal/hosting"
)

const (
	configurationDirectoryKeyConstant     = "directory"
	configurationCacheKeyConstant         = "cache_directory"
	configurationPageSizeKeyConstant      = "page_size"
	configurationFavoritesKeyConstant     = "favorites_file"
	configurationOrganizationsKeyConstant = "organizations"
	configurationNameKeyConstant          = "name"
	configurationPrefixKeyConstant        = "prefix"
	defaultCheckoutDirectoryConstant      = "."
	defaultPageSizeConstant               = 100
	configurationKeySeparatorConstant     = "."
)

// OrganizationConfiguration describes one hosting organization entry.
type OrganizationConfiguration struct {
	Name   string `mapstructure:"name"`
	Prefix string `mapstructure:"prefix"`
}

// CommandConfiguration captures persistent settings shared by the module commands.
type CommandConfiguration struct {
	Directory      string                      `mapstructure:"directory"`
	CacheDirectory string                      `mapstructure:"cache_directory"`
	PageSize       int                         `mapstructure:"page_size"`
	FavoritesFile  string                      `mapstructure:"favorites_file"`
	Organizations  []OrganizationConfiguration `mapstructure:"organizations"`
}

// DefaultCommandConfiguration returns baseline configuration values for the module commands.
func DefaultCommandConfiguration() CommandConfiguration {
	organizationEntries := make([]OrganizationConfiguration, 0, len(hosting.DefaultOrganizations()))
	for _, organization := range hosting.DefaultOrganizations() {
		organizationEntries = append(organizationEntries, OrganizationConfiguration{Name: organization.Name, Prefix: organization.Prefix})
	}
	return CommandConfiguration{
		Directory:      defaultCheckoutDirectoryConstant,
		CacheDirectory: "",
		PageSize:       defaultPageSizeConstant,
		FavoritesFile:  "",
		Organizations:  organizationEntries,
	}
}

// DefaultConfigurationValues produces Viper defaults for the module commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()

	organizationValues := make([]map[string]any, 0, len(defaults.Organizations))
	for _, organizationEntry := range defaults.Organizations {
		organizationValues = append(organizationValues, map[string]any{
			configurationNameKeyConstant:   organizationEntry.Name,
			configurationPrefixKeyConstant: organizationEntry.Prefix,
		})
	}

	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationDirectoryKeyConstant:     defaults.Directory,
		rootKey + configurationKeySeparatorConstant + configurationCacheKeyConstant:         defaults.CacheDirectory,
		rootKey + configurationKeySeparatorConstant + configurationPageSizeKeyConstant:      defaults.PageSize,
		rootKey + configurationKeySeparatorConstant + configurationFavoritesKeyConstant:     defaults.FavoritesFile,
		rootKey + configurationKeySeparatorConstant + configurationOrganizationsKeyConstant: organizationValues,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	if len(sanitized.Directory) == 0 {
		sanitized.Directory = defaultCheckoutDirectoryConstant
	}

	sanitized.CacheDirectory = strings.TrimSpace(configuration.CacheDirectory)
	sanitized.FavoritesFile = strings.TrimSpace(configuration.FavoritesFile)

	if sanitized.PageSize <= 0 {
		sanitized.PageSize = defaultPageSizeConstant
	}

	sanitized.Organizations = sanitizeOrganizations(configuration.Organizations)
	return sanitized
}

func sanitizeOrganizations(rawEntries []OrganizationConfiguration) []OrganizationConfiguration {
	sanitizedEntries := make([]OrganizationConfiguration, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		trimmedName := strings.TrimSpace(rawEntry.Name)
		if len(trimmedName) == 0 {
			continue
		}
		sanitizedEntries = append(sanitizedEntries, OrganizationConfiguration{
			Name:   trimmedName,
			Prefix: strings.TrimSpace(rawEntry.Prefix),
		})
	}
	if len(sanitizedEntries) == 0 {
		return DefaultCommandConfiguration().Organizations
	}
	return sanitizedEntries
}

// organizations converts the configured entries into hosting organizations in
// priority order.
func (configuration CommandConfiguration) organizations() []hosting.Organization {
	organizationList := make([]hosting.Organization, 0, len(configuration.Organizations))
	for _, organizationEntry := range configuration.Organizations {
		organizationList = append(organizationList, hosting.Organization{Name: organizationEntry.Name, Prefix: organizationEntry.Prefix})
	}
	return organizationList
}
