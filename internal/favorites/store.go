package favorites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	favoritesFileNameConstant   = ".y2m"
	favoritesConfigTypeConstant = "dotenv"
	favoritesSeparatorConstant  = " "
	favoritesFilePermissions    = 0o644
	favoritesErrorTemplate      = "favorites file %s unreadable: %s"
)

const favoritesTemplateContent = "# y2m favorites\n" +
	"# List the modules you work on most, separated by spaces, for example:\n" +
	"# Y2MFAVORITES=\"core network storage\"\n" +
	"Y2MFAVORITES=\"\"\n"

// FavoritesFileError reports a favorites file that exists but cannot be loaded.
type FavoritesFileError struct {
	Path  string
	Cause error
}

// Error describes the favorites failure.
func (favoritesError FavoritesFileError) Error() string {
	return fmt.Sprintf(favoritesErrorTemplate, favoritesError.Path, favoritesError.Cause)
}

// Unwrap exposes the underlying cause.
func (favoritesError FavoritesFileError) Unwrap() error {
	return favoritesError.Cause
}

// Store reads the favorites list from a dotenv style file, creating a
// commented template on first use.
type Store struct {
	filePath string
}

// NewStore constructs a favorites store over the provided file path, falling
// back to the fixed file in the user's home directory when none is configured.
func NewStore(filePath string) (*Store, error) {
	trimmedFilePath := strings.TrimSpace(filePath)
	if len(trimmedFilePath) == 0 {
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return nil, FavoritesFileError{Path: favoritesFileNameConstant, Cause: homeError}
		}
		trimmedFilePath = filepath.Join(homeDirectory, favoritesFileNameConstant)
	}
	return &Store{filePath: trimmedFilePath}, nil
}

// FilePath reports the favorites file the store reads.
func (store *Store) FilePath() string {
	return store.filePath
}

// Load returns the configured favorite module names. A missing file is
// created with a commented template and treated as an empty list.
func (store *Store) Load() ([]string, error) {
	if _, statError := os.Stat(store.filePath); statError != nil {
		if !os.IsNotExist(statError) {
			return nil, FavoritesFileError{Path: store.filePath, Cause: statError}
		}
		if writeError := os.WriteFile(store.filePath, []byte(favoritesTemplateContent), favoritesFilePermissions); writeError != nil {
			return nil, FavoritesFileError{Path: store.filePath, Cause: writeError}
		}
		return nil, nil
	}

	viperInstance := viper.New()
	viperInstance.SetConfigFile(store.filePath)
	viperInstance.SetConfigType(favoritesConfigTypeConstant)
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return nil, FavoritesFileError{Path: store.filePath, Cause: readError}
	}

	var favoritesConfiguration struct {
		Favorites []string `mapstructure:"y2mfavorites"`
	}
	decodeError := viperInstance.Unmarshal(&favoritesConfiguration, viper.DecodeHook(favoritesDecodeHook()))
	if decodeError != nil {
		return nil, FavoritesFileError{Path: store.filePath, Cause: decodeError}
	}

	return filterEmptyNames(favoritesConfiguration.Favorites), nil
}

func favoritesDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.StringToSliceHookFunc(favoritesSeparatorConstant)
}

func filterEmptyNames(moduleNames []string) []string {
	favoriteNames := []string{}
	for _, moduleName := range moduleNames {
		trimmedName := strings.TrimSpace(moduleName)
		if len(trimmedName) == 0 {
			continue
		}
		favoriteNames = append(favoriteNames, trimmedName)
	}
	return favoriteNames
}
