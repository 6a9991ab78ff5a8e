package catalog

import (
	"context"
	"fmt"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/temirov/y2m/internal/execshell"
)

const (
	silentFlagConstant                = "-sS"
	includeHeadersFlagConstant        = "-i"
	urlFlagConstant                   = "--url"
	headerFlagConstant                = "-H"
	conditionalHeaderTemplateConstant = "If-None-Match: %s"
	listingURLTemplateConstant        = "https://api.github.com/orgs/%s/repos?page=%d&per_page=%d"
	statusLinePrefixConstant          = "HTTP/"
	headerSeparatorConstant           = ":"
	carriageReturnConstant            = "\r"
	missingStatusLineDetailConstant   = "missing status line"
	missingBodyDetailConstant         = "missing header terminator"
	statusFreshConstant               = 200
	statusUnchangedConstant           = 304
)

// PageResponse carries the parsed pieces of one listing page response.
type PageResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// PageFetcher retrieves one listing page, optionally as a conditional request.
type PageFetcher interface {
	FetchPage(executionContext context.Context, organizationName string, pageNumber int, pageSize int, cachedVersionTag string) (PageResponse, error)
}

// CurlCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type CurlCommandExecutor interface {
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CurlPageFetcher fetches listing pages by running curl through the shell executor.
type CurlPageFetcher struct {
	executor CurlCommandExecutor
}

// NewCurlPageFetcher constructs a curl backed page fetcher.
func NewCurlPageFetcher(executor CurlCommandExecutor) (*CurlPageFetcher, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &CurlPageFetcher{executor: executor}, nil
}

// FetchPage requests one listing page, attaching the cached version tag as a
// conditional header when available, and parses the raw response into status,
// headers, and body.
func (fetcher *CurlPageFetcher) FetchPage(executionContext context.Context, organizationName string, pageNumber int, pageSize int, cachedVersionTag string) (PageResponse, error) {
	commandArguments := []string{
		silentFlagConstant,
		includeHeadersFlagConstant,
		urlFlagConstant,
		listingPageURL(organizationName, pageNumber, pageSize),
	}
	if len(strings.TrimSpace(cachedVersionTag)) > 0 {
		commandArguments = append(commandArguments, headerFlagConstant, conditionalRequestHeader(cachedVersionTag))
	}

	executionResult, executionError := fetcher.executor.ExecuteCurl(executionContext, execshell.CommandDetails{Arguments: commandArguments})
	if executionError != nil {
		return PageResponse{}, executionError
	}

	return parseRawResponse(executionResult.StandardOutput)
}

func listingPageURL(organizationName string, pageNumber int, pageSize int) string {
	return fmt.Sprintf(listingURLTemplateConstant, organizationName, pageNumber, pageSize)
}

func conditionalRequestHeader(cachedVersionTag string) string {
	return fmt.Sprintf(conditionalHeaderTemplateConstant, cachedVersionTag)
}

// parseRawResponse splits a curl -i capture into its final status line, header
// map, and body, skipping any informational header sections that precede the
// final response.
func parseRawResponse(rawResponse string) (PageResponse, error) {
	remainingResponse := strings.TrimLeft(rawResponse, "\r\n")
	for {
		if !strings.HasPrefix(remainingResponse, statusLinePrefixConstant) {
			return PageResponse{}, MalformedResponseError{Detail: missingStatusLineDetailConstant}
		}

		headerSection, bodySection, separatorFound := splitHeaderSection(remainingResponse)
		if !separatorFound {
			return PageResponse{}, MalformedResponseError{Detail: missingBodyDetailConstant}
		}
		if strings.HasPrefix(bodySection, statusLinePrefixConstant) {
			remainingResponse = bodySection
			continue
		}

		statusCode, headerValues, parseError := parseHeaderSection(headerSection)
		if parseError != nil {
			return PageResponse{}, parseError
		}
		return PageResponse{StatusCode: statusCode, Headers: headerValues, Body: bodySection}, nil
	}
}

func splitHeaderSection(rawResponse string) (string, string, bool) {
	if headerSection, bodySection, separatorFound := strings.Cut(rawResponse, "\r\n\r\n"); separatorFound {
		return headerSection, strings.TrimLeft(bodySection, "\r\n"), true
	}
	if headerSection, bodySection, separatorFound := strings.Cut(rawResponse, "\n\n"); separatorFound {
		return headerSection, strings.TrimLeft(bodySection, "\r\n"), true
	}
	return rawResponse, "", false
}

func parseHeaderSection(headerSection string) (int, map[string]string, error) {
	headerLines := strings.Split(headerSection, "\n")
	statusLineFields := strings.Fields(strings.TrimSuffix(headerLines[0], carriageReturnConstant))
	if len(statusLineFields) < 2 {
		return 0, nil, MalformedResponseError{Detail: missingStatusLineDetailConstant}
	}
	statusCode, conversionError := strconv.Atoi(statusLineFields[1])
	if conversionError != nil {
		return 0, nil, MalformedResponseError{Detail: statusLineFields[1]}
	}

	headerValues := map[string]string{}
	for _, headerLine := range headerLines[1:] {
		trimmedLine := strings.TrimSuffix(headerLine, carriageReturnConstant)
		headerName, headerValue, separatorFound := strings.Cut(trimmedLine, headerSeparatorConstant)
		if !separatorFound {
			continue
		}
		canonicalName := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(headerName))
		headerValues[canonicalName] = strings.TrimSpace(headerValue)
	}
	return statusCode, headerValues, nil
}
