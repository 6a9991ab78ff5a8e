package gitrepo

import (
	"context"
	"errors"

	"github.com/temirov/y2m/internal/execshell"
)

const (
	cloneSubcommandConstant      = "clone"
	configSubcommandConstant     = "config"
	fetchSubcommandConstant      = "fetch"
	pullSubcommandConstant       = "pull"
	checkoutSubcommandConstant   = "checkout"
	depthFlagConstant            = "--depth"
	shallowDepthValueConstant    = "1"
	allFlagConstant              = "--all"
	unshallowFlagConstant        = "--unshallow"
	remoteFetchConfigKeyConstant = "remote.origin.fetch"
	remoteFetchRefspecConstant   = "+refs/heads/*:refs/remotes/origin/*"
	executorNotConfiguredMessage = "git executor not configured"
)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrExecutorNotConfigured indicates the manager was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessage)

// RepositoryManager performs checkout-level git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a repository manager over a git executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CloneShallow clones a remote with history truncated to a single commit.
func (manager *RepositoryManager) CloneShallow(executionContext context.Context, remoteURL string, targetDirectory string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{cloneSubcommandConstant, depthFlagConstant, shallowDepthValueConstant, remoteURL, targetDirectory},
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// ConfigureRemoteFetch resets the origin fetch refspec so every remote branch
// is tracked after the shallow clone.
func (manager *RepositoryManager) ConfigureRemoteFetch(executionContext context.Context, repositoryPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{configSubcommandConstant, remoteFetchConfigKeyConstant, remoteFetchRefspecConstant},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// FetchAll fetches every remote branch into the repository.
func (manager *RepositoryManager) FetchAll(executionContext context.Context, repositoryPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{fetchSubcommandConstant, allFlagConstant},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// PullUnshallow completes the truncated history so the checkout behaves like a full clone.
func (manager *RepositoryManager) PullUnshallow(executionContext context.Context, repositoryPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{pullSubcommandConstant, unshallowFlagConstant},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// Pull updates the repository from its tracked remote.
func (manager *RepositoryManager) Pull(executionContext context.Context, repositoryPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{pullSubcommandConstant},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// Checkout switches the repository's working tree to a branch or tag.
func (manager *RepositoryManager) Checkout(executionContext context.Context, repositoryPath string, reference string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{checkoutSubcommandConstant, reference},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}
