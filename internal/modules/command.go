package modules

import (
	"io"

	"go.uber.org/zap"

	"github.com/temirov/y2m/internal/execshell"
	"github.com/temirov/y2m/internal/ui"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted module command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandDependencies carries optional collaborator overrides for the module
// command builders; unset slots fall back to production implementations.
type CommandDependencies struct {
	ShellExecutor     *execshell.ShellExecutor
	Lister            ListingRefresher
	Locator           ModuleLocator
	ListingReader     ListingReader
	WorkspaceStore    WorkspaceStore
	RepositoryManager GitRepositoryManager
	FavoritesProvider FavoritesProvider
}

// CommandBuilder assembles the module cobra commands with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Dependencies                 CommandDependencies
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		return ui.NewConsoleCommandEventLogger(logger)
	}
	return nil
}

// resolveService assembles a fully wired service for one command invocation.
func (builder *CommandBuilder) resolveService(outputWriter io.Writer, errorWriter io.Writer) (*Service, error) {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	commandDependencies, resolutionError := resolveDependencies(builder.Dependencies, logger, builder.resolveObserver(logger), configuration)
	if resolutionError != nil {
		return nil, resolutionError
	}

	return NewService(
		logger,
		commandDependencies.lister,
		commandDependencies.locator,
		commandDependencies.listingReader,
		commandDependencies.workspaceStore,
		commandDependencies.repositoryManager,
		commandDependencies.favoritesProvider,
		configuration.organizations(),
		outputWriter,
		errorWriter,
	), nil
}
