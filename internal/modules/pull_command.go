package modules

import (
	"github.com/spf13/cobra"
)

const (
	pullCommandUseConstant   = "pull [ALL | FAV | module ...]"
	pullCommandAliasConstant = "up"
	pullCommandShortConstant = "Update checked out modules"
	pullCommandLongConstant  = "pull updates the selected modules from their remotes. Without arguments every checked out module is updated."
)

// BuildPullCommand constructs the cobra command updating local checkouts.
func (builder *CommandBuilder) BuildPullCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     pullCommandUseConstant,
		Aliases: []string{pullCommandAliasConstant},
		Short:   pullCommandShortConstant,
		Long:    pullCommandLongConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.runPull,
	}
	return command, nil
}

func (builder *CommandBuilder) runPull(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.resolveService(command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.Pull(command.Context(), ParseModuleSelection(arguments))
}
