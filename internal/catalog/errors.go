package catalog

import (
	"errors"
	"fmt"
)

const (
	fetcherNotConfiguredMessageConstant   = "page fetcher not configured"
	storeNotConfiguredMessageConstant     = "cache store not configured"
	executorNotConfiguredMessageConstant  = "curl executor not configured"
	loggerNotConfiguredMessageConstant    = "logger not configured"
	listingErrorTemplateConstant          = "listing fetch for %s page %d failed: %s"
	unexpectedStatusTemplateConstant      = "listing fetch for %s page %d returned status %d"
	decodingErrorTemplateConstant         = "listing page decoding for %s page %d failed: %s"
	unknownModuleTemplateConstant         = "module %s not found in any organization listing"
	malformedResponseMessageConstant      = "malformed http response"
	malformedResponseTemplateConstant     = "%s: %s"
	cacheAccessErrorTemplateConstant      = "cache access for %s failed: %s"
)

var (
	// ErrFetcherNotConfigured indicates the lister was constructed without a page fetcher.
	ErrFetcherNotConfigured = errors.New(fetcherNotConfiguredMessageConstant)
	// ErrStoreNotConfigured indicates a component was constructed without a cache store.
	ErrStoreNotConfigured = errors.New(storeNotConfiguredMessageConstant)
	// ErrExecutorNotConfigured indicates the fetcher was constructed without a curl executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrLoggerNotConfigured indicates the lister was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
)

// ListingFetchError reports a fatal failure while refreshing an organization listing.
type ListingFetchError struct {
	OrganizationName string
	PageNumber       int
	Cause            error
}

// Error describes the listing failure.
func (fetchError ListingFetchError) Error() string {
	return fmt.Sprintf(listingErrorTemplateConstant, fetchError.OrganizationName, fetchError.PageNumber, fetchError.Cause)
}

// Unwrap exposes the underlying cause.
func (fetchError ListingFetchError) Unwrap() error {
	return fetchError.Cause
}

// UnexpectedStatusError reports a response status that is neither fresh nor unchanged.
type UnexpectedStatusError struct {
	OrganizationName string
	PageNumber       int
	StatusCode       int
}

// Error describes the unexpected status.
func (statusError UnexpectedStatusError) Error() string {
	return fmt.Sprintf(unexpectedStatusTemplateConstant, statusError.OrganizationName, statusError.PageNumber, statusError.StatusCode)
}

// ResponseDecodingError reports a listing page body that could not be decoded.
type ResponseDecodingError struct {
	OrganizationName string
	PageNumber       int
	Cause            error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(decodingErrorTemplateConstant, decodingError.OrganizationName, decodingError.PageNumber, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// UnknownModuleError reports a short name absent from every organization listing.
type UnknownModuleError struct {
	ModuleName string
}

// Error describes the unresolved module.
func (unknownError UnknownModuleError) Error() string {
	return fmt.Sprintf(unknownModuleTemplateConstant, unknownError.ModuleName)
}

// MalformedResponseError reports a curl response that could not be split into
// status line, headers, and body.
type MalformedResponseError struct {
	Detail string
}

// Error describes the malformed response.
func (responseError MalformedResponseError) Error() string {
	return fmt.Sprintf(malformedResponseTemplateConstant, malformedResponseMessageConstant, responseError.Detail)
}

// CacheAccessError reports a filesystem failure inside the cache store.
type CacheAccessError struct {
	Path  string
	Cause error
}

// Error describes the cache failure.
func (accessError CacheAccessError) Error() string {
	return fmt.Sprintf(cacheAccessErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (accessError CacheAccessError) Unwrap() error {
	return accessError.Cause
}
