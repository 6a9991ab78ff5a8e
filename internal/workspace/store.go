package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	currentDirectoryConstant       = "."
	hiddenEntryPrefixConstant      = "."
	workspaceErrorTemplateConstant = "workspace access for %s failed: %s"
)

// WorkspaceAccessError reports a filesystem failure inside the checkout root.
type WorkspaceAccessError struct {
	Path  string
	Cause error
}

// Error describes the workspace failure.
func (accessError WorkspaceAccessError) Error() string {
	return fmt.Sprintf(workspaceErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (accessError WorkspaceAccessError) Unwrap() error {
	return accessError.Cause
}

// LocalRepositoryStore enumerates and mutates module checkouts under one root directory.
type LocalRepositoryStore struct {
	rootDirectory string
}

// NewLocalRepositoryStore constructs a store over the checkout root, defaulting
// to the current directory when none is configured.
func NewLocalRepositoryStore(rootDirectory string) *LocalRepositoryStore {
	trimmedRootDirectory := strings.TrimSpace(rootDirectory)
	if len(trimmedRootDirectory) == 0 {
		trimmedRootDirectory = currentDirectoryConstant
	}
	return &LocalRepositoryStore{rootDirectory: trimmedRootDirectory}
}

// RootDirectory reports the checkout root the store operates on.
func (store *LocalRepositoryStore) RootDirectory() string {
	return store.rootDirectory
}

// ListModules returns the sorted names of module directories under the root,
// ignoring plain files and hidden directories.
func (store *LocalRepositoryStore) ListModules() ([]string, error) {
	directoryEntries, readError := os.ReadDir(store.rootDirectory)
	if readError != nil {
		return nil, WorkspaceAccessError{Path: store.rootDirectory, Cause: readError}
	}

	moduleNames := []string{}
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if strings.HasPrefix(directoryEntry.Name(), hiddenEntryPrefixConstant) {
			continue
		}
		moduleNames = append(moduleNames, directoryEntry.Name())
	}
	sort.Strings(moduleNames)
	return moduleNames, nil
}

// ModulePath returns the directory a module is or would be checked out into.
func (store *LocalRepositoryStore) ModulePath(moduleName string) string {
	return filepath.Join(store.rootDirectory, moduleName)
}

// ModuleExists reports whether a module directory is present under the root.
func (store *LocalRepositoryStore) ModuleExists(moduleName string) bool {
	pathInformation, statError := os.Stat(store.ModulePath(moduleName))
	if statError != nil {
		return false
	}
	return pathInformation.IsDir()
}

// RemoveModule deletes a module directory and everything beneath it.
func (store *LocalRepositoryStore) RemoveModule(moduleName string) error {
	modulePath := store.ModulePath(moduleName)
	if removeError := os.RemoveAll(modulePath); removeError != nil {
		return WorkspaceAccessError{Path: modulePath, Cause: removeError}
	}
	return nil
}

// CountTopLevelEntries reports how many entries a module's working tree holds
// at its top level.
func (store *LocalRepositoryStore) CountTopLevelEntries(moduleName string) (int, error) {
	modulePath := store.ModulePath(moduleName)
	directoryEntries, readError := os.ReadDir(modulePath)
	if readError != nil {
		return 0, WorkspaceAccessError{Path: modulePath, Cause: readError}
	}
	return len(directoryEntries), nil
}
