package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	cacheDirectoryNameConstant      = "y2m"
	pageHeadersFileTemplateConstant = "page-%d.headers.yaml"
	pageBodyFileTemplateConstant    = "page-%d.body.json"
	pageNamesFileTemplateConstant   = "page-%d.names"
	mergedListFileNameConstant      = "repositories"
	pageFilePrefixConstant          = "page-"
	pageHeadersFileSuffixConstant   = ".headers.yaml"
	versionTagHeaderNameConstant    = "Etag"
	nameListSeparatorConstant       = "\n"
	cacheDirectoryPermissions       = 0o755
	cacheFilePermissions            = 0o644
)

// PageEntry captures the persisted state of one fetched listing page.
type PageEntry struct {
	Headers map[string]string
	Body    string
	Names   []string
}

// CacheStore persists listing pages and merged repository lists under a root directory.
type CacheStore struct {
	rootDirectory string
}

// NewCacheStore constructs a cache store rooted at the provided directory,
// falling back to the user cache directory when none is configured.
func NewCacheStore(rootDirectory string) (*CacheStore, error) {
	trimmedRootDirectory := strings.TrimSpace(rootDirectory)
	if len(trimmedRootDirectory) == 0 {
		userCacheDirectory, cacheDirectoryError := os.UserCacheDir()
		if cacheDirectoryError != nil {
			return nil, CacheAccessError{Path: cacheDirectoryNameConstant, Cause: cacheDirectoryError}
		}
		trimmedRootDirectory = filepath.Join(userCacheDirectory, cacheDirectoryNameConstant)
	}
	return &CacheStore{rootDirectory: trimmedRootDirectory}, nil
}

// RootDirectory reports the directory the store persists under.
func (store *CacheStore) RootDirectory() string {
	return store.rootDirectory
}

func (store *CacheStore) organizationDirectory(organizationName string) string {
	return filepath.Join(store.rootDirectory, organizationName)
}

func (store *CacheStore) pageFilePath(organizationName string, template string, pageNumber int) string {
	return filepath.Join(store.organizationDirectory(organizationName), fmt.Sprintf(template, pageNumber))
}

// WritePageEntry persists the header snapshot, raw body, and derived name list for a page.
func (store *CacheStore) WritePageEntry(organizationName string, pageNumber int, entry PageEntry) error {
	organizationDirectory := store.organizationDirectory(organizationName)
	if directoryError := os.MkdirAll(organizationDirectory, cacheDirectoryPermissions); directoryError != nil {
		return CacheAccessError{Path: organizationDirectory, Cause: directoryError}
	}

	headerContent, marshalError := yaml.Marshal(entry.Headers)
	if marshalError != nil {
		return CacheAccessError{Path: store.pageFilePath(organizationName, pageHeadersFileTemplateConstant, pageNumber), Cause: marshalError}
	}

	fileContents := map[string][]byte{
		store.pageFilePath(organizationName, pageHeadersFileTemplateConstant, pageNumber): headerContent,
		store.pageFilePath(organizationName, pageBodyFileTemplateConstant, pageNumber):    []byte(entry.Body),
		store.pageFilePath(organizationName, pageNamesFileTemplateConstant, pageNumber):   encodeNameList(entry.Names),
	}
	for filePath, content := range fileContents {
		if writeError := os.WriteFile(filePath, content, cacheFilePermissions); writeError != nil {
			return CacheAccessError{Path: filePath, Cause: writeError}
		}
	}
	return nil
}

// ReadPageNames returns the derived repository names cached for a page.
func (store *CacheStore) ReadPageNames(organizationName string, pageNumber int) ([]string, error) {
	namesFilePath := store.pageFilePath(organizationName, pageNamesFileTemplateConstant, pageNumber)
	content, readError := os.ReadFile(namesFilePath)
	if readError != nil {
		return nil, CacheAccessError{Path: namesFilePath, Cause: readError}
	}
	return decodeNameList(content), nil
}

// CachedVersionTag returns the stored version tag for a page when a header snapshot exists.
func (store *CacheStore) CachedVersionTag(organizationName string, pageNumber int) (string, bool) {
	headersFilePath := store.pageFilePath(organizationName, pageHeadersFileTemplateConstant, pageNumber)
	content, readError := os.ReadFile(headersFilePath)
	if readError != nil {
		return "", false
	}

	headerValues := map[string]string{}
	if unmarshalError := yaml.Unmarshal(content, &headerValues); unmarshalError != nil {
		return "", false
	}
	versionTag, tagFound := headerValues[versionTagHeaderNameConstant]
	if !tagFound || len(strings.TrimSpace(versionTag)) == 0 {
		return "", false
	}
	return versionTag, true
}

// ListCachedPages returns the page numbers with persisted header snapshots, ascending.
func (store *CacheStore) ListCachedPages(organizationName string) ([]int, error) {
	directoryEntries, readError := os.ReadDir(store.organizationDirectory(organizationName))
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, CacheAccessError{Path: store.organizationDirectory(organizationName), Cause: readError}
	}

	pageNumbers := make([]int, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if !strings.HasPrefix(entryName, pageFilePrefixConstant) || !strings.HasSuffix(entryName, pageHeadersFileSuffixConstant) {
			continue
		}
		numberText := strings.TrimSuffix(strings.TrimPrefix(entryName, pageFilePrefixConstant), pageHeadersFileSuffixConstant)
		pageNumber, parseError := strconv.Atoi(numberText)
		if parseError != nil || pageNumber < 1 {
			continue
		}
		pageNumbers = append(pageNumbers, pageNumber)
	}
	sort.Ints(pageNumbers)
	return pageNumbers, nil
}

// PurgePagesAbove removes every cached page entry with a number above the bound.
func (store *CacheStore) PurgePagesAbove(organizationName string, highestPageNumber int) error {
	cachedPages, listError := store.ListCachedPages(organizationName)
	if listError != nil {
		return listError
	}

	for _, pageNumber := range cachedPages {
		if pageNumber <= highestPageNumber {
			continue
		}
		pageFilePaths := []string{
			store.pageFilePath(organizationName, pageHeadersFileTemplateConstant, pageNumber),
			store.pageFilePath(organizationName, pageBodyFileTemplateConstant, pageNumber),
			store.pageFilePath(organizationName, pageNamesFileTemplateConstant, pageNumber),
		}
		for _, pageFilePath := range pageFilePaths {
			if removeError := os.Remove(pageFilePath); removeError != nil && !os.IsNotExist(removeError) {
				return CacheAccessError{Path: pageFilePath, Cause: removeError}
			}
		}
	}
	return nil
}

// WriteMergedList persists the organization's canonical repository list, sorted and deduplicated.
func (store *CacheStore) WriteMergedList(organizationName string, repositoryNames []string) error {
	organizationDirectory := store.organizationDirectory(organizationName)
	if directoryError := os.MkdirAll(organizationDirectory, cacheDirectoryPermissions); directoryError != nil {
		return CacheAccessError{Path: organizationDirectory, Cause: directoryError}
	}

	mergedListPath := filepath.Join(organizationDirectory, mergedListFileNameConstant)
	mergedNames := sortAndDeduplicate(repositoryNames)
	if writeError := os.WriteFile(mergedListPath, encodeNameList(mergedNames), cacheFilePermissions); writeError != nil {
		return CacheAccessError{Path: mergedListPath, Cause: writeError}
	}
	return nil
}

// ReadMergedList returns the organization's canonical repository list, or an
// empty list when no listing has been cached yet.
func (store *CacheStore) ReadMergedList(organizationName string) ([]string, error) {
	mergedListPath := filepath.Join(store.organizationDirectory(organizationName), mergedListFileNameConstant)
	content, readError := os.ReadFile(mergedListPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, CacheAccessError{Path: mergedListPath, Cause: readError}
	}
	return decodeNameList(content), nil
}

func encodeNameList(repositoryNames []string) []byte {
	if len(repositoryNames) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(repositoryNames, nameListSeparatorConstant) + nameListSeparatorConstant)
}

func decodeNameList(content []byte) []string {
	repositoryNames := []string{}
	for _, candidateLine := range strings.Split(string(content), nameListSeparatorConstant) {
		trimmedLine := strings.TrimSpace(candidateLine)
		if len(trimmedLine) == 0 {
			continue
		}
		repositoryNames = append(repositoryNames, trimmedLine)
	}
	return repositoryNames
}

func sortAndDeduplicate(repositoryNames []string) []string {
	uniqueNames := make(map[string]struct{}, len(repositoryNames))
	for _, repositoryName := range repositoryNames {
		trimmedName := strings.TrimSpace(repositoryName)
		if len(trimmedName) == 0 {
			continue
		}
		uniqueNames[trimmedName] = struct{}{}
	}

	mergedNames := make([]string, 0, len(uniqueNames))
	for uniqueName := range uniqueNames {
		mergedNames = append(mergedNames, uniqueName)
	}
	sort.Strings(mergedNames)
	return mergedNames
}
