package catalog

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/y2m/internal/hosting"
)

const (
	defaultPageSizeConstant         = 100
	firstPageNumberConstant         = 1
	fetchAttemptsPerPageConstant    = 3
	organizationLogFieldConstant    = "organization"
	pageNumberLogFieldConstant      = "page"
	attemptLogFieldConstant         = "attempt"
	pageFreshLogMessageConstant     = "listing page downloaded"
	pageUnchangedLogMessageConstant = "listing page unchanged"
	pageShortLogMessageConstant     = "listing final page reached"
	pageRetryLogMessageConstant     = "listing page fetch retried"
)

// RepositoryLister refreshes the cached repository listing for an organization
// by walking the paginated hosting API with conditional requests.
type RepositoryLister struct {
	logger   *zap.Logger
	fetcher  PageFetcher
	store    *CacheStore
	pageSize int
}

// NewRepositoryLister constructs a lister over the provided fetcher and store.
func NewRepositoryLister(logger *zap.Logger, fetcher PageFetcher, store *CacheStore, pageSize int) (*RepositoryLister, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if fetcher == nil {
		return nil, ErrFetcherNotConfigured
	}
	if store == nil {
		return nil, ErrStoreNotConfigured
	}
	if pageSize <= 0 {
		pageSize = defaultPageSizeConstant
	}
	return &RepositoryLister{logger: logger, fetcher: fetcher, store: store, pageSize: pageSize}, nil
}

// FetchOrganization walks the organization's listing pages from the first,
// downloading changed pages, stopping at the first unchanged or short page,
// purging stale later pages, and rebuilding the merged repository list.
func (lister *RepositoryLister) FetchOrganization(executionContext context.Context, organization hosting.Organization) error {
	highestConfirmedPage := 0
	for pageNumber := firstPageNumberConstant; ; pageNumber++ {
		pageResponse, fetchError := lister.fetchPageWithRetries(executionContext, organization.Name, pageNumber)
		if fetchError != nil {
			return fetchError
		}

		if pageResponse.StatusCode == statusUnchangedConstant {
			lister.logger.Debug(pageUnchangedLogMessageConstant,
				zap.String(organizationLogFieldConstant, organization.Name),
				zap.Int(pageNumberLogFieldConstant, pageNumber),
			)
			highestConfirmedPage = lister.highestCachedPage(organization.Name, pageNumber)
			break
		}

		repositoryNames, decodingError := decodeRepositoryNames(pageResponse.Body)
		if decodingError != nil {
			return ResponseDecodingError{OrganizationName: organization.Name, PageNumber: pageNumber, Cause: decodingError}
		}
		sort.Strings(repositoryNames)

		pageEntry := PageEntry{Headers: pageResponse.Headers, Body: pageResponse.Body, Names: repositoryNames}
		if writeError := lister.store.WritePageEntry(organization.Name, pageNumber, pageEntry); writeError != nil {
			return writeError
		}

		if len(repositoryNames) < lister.pageSize {
			lister.logger.Debug(pageShortLogMessageConstant,
				zap.String(organizationLogFieldConstant, organization.Name),
				zap.Int(pageNumberLogFieldConstant, pageNumber),
			)
			highestConfirmedPage = pageNumber
			break
		}

		lister.logger.Debug(pageFreshLogMessageConstant,
			zap.String(organizationLogFieldConstant, organization.Name),
			zap.Int(pageNumberLogFieldConstant, pageNumber),
		)
	}

	if purgeError := lister.store.PurgePagesAbove(organization.Name, highestConfirmedPage); purgeError != nil {
		return purgeError
	}
	return lister.rebuildMergedList(organization.Name)
}

// fetchPageWithRetries attempts a page fetch up to the configured attempt
// limit, treating transport failures and unexpected statuses alike as
// retryable until the attempts are spent.
func (lister *RepositoryLister) fetchPageWithRetries(executionContext context.Context, organizationName string, pageNumber int) (PageResponse, error) {
	cachedVersionTag, _ := lister.store.CachedVersionTag(organizationName, pageNumber)

	var lastFailure error
	for attemptNumber := 1; attemptNumber <= fetchAttemptsPerPageConstant; attemptNumber++ {
		pageResponse, fetchError := lister.fetcher.FetchPage(executionContext, organizationName, pageNumber, lister.pageSize, cachedVersionTag)
		switch {
		case fetchError != nil:
			lastFailure = fetchError
		case pageResponse.StatusCode != statusFreshConstant && pageResponse.StatusCode != statusUnchangedConstant:
			lastFailure = UnexpectedStatusError{OrganizationName: organizationName, PageNumber: pageNumber, StatusCode: pageResponse.StatusCode}
		default:
			return pageResponse, nil
		}

		lister.logger.Debug(pageRetryLogMessageConstant,
			zap.String(organizationLogFieldConstant, organizationName),
			zap.Int(pageNumberLogFieldConstant, pageNumber),
			zap.Int(attemptLogFieldConstant, attemptNumber),
			zap.Error(lastFailure),
		)
	}
	return PageResponse{}, ListingFetchError{OrganizationName: organizationName, PageNumber: pageNumber, Cause: lastFailure}
}

// highestCachedPage reports the effective highest page after an unchanged
// response: every cached page at or beyond the unchanged one stays trusted.
func (lister *RepositoryLister) highestCachedPage(organizationName string, unchangedPageNumber int) int {
	cachedPages, listError := lister.store.ListCachedPages(organizationName)
	if listError != nil || len(cachedPages) == 0 {
		return unchangedPageNumber
	}
	highestPageNumber := cachedPages[len(cachedPages)-1]
	if highestPageNumber < unchangedPageNumber {
		return unchangedPageNumber
	}
	return highestPageNumber
}

func (lister *RepositoryLister) rebuildMergedList(organizationName string) error {
	cachedPages, listError := lister.store.ListCachedPages(organizationName)
	if listError != nil {
		return listError
	}

	mergedNames := []string{}
	for _, pageNumber := range cachedPages {
		pageNames, readError := lister.store.ReadPageNames(organizationName, pageNumber)
		if readError != nil {
			return readError
		}
		mergedNames = append(mergedNames, pageNames...)
	}
	return lister.store.WriteMergedList(organizationName, mergedNames)
}

// decodeRepositoryNames interprets a listing page body as the hosting API's
// JSON array of repository objects and extracts their names.
func decodeRepositoryNames(responseBody string) ([]string, error) {
	var repositoryRecords []struct {
		Name string `json:"name"`
	}
	if decodingError := json.Unmarshal([]byte(responseBody), &repositoryRecords); decodingError != nil {
		return nil, decodingError
	}

	repositoryNames := make([]string, 0, len(repositoryRecords))
	for _, repositoryRecord := range repositoryRecords {
		repositoryNames = append(repositoryNames, repositoryRecord.Name)
	}
	return repositoryNames, nil
}
