package modules

import (
	"github.com/spf13/cobra"

	"github.com/temirov/y2m/internal/utils"
)

const (
	listCommandUseConstant   = "list"
	listCommandAliasConstant = "li"
	listCommandShortConstant = "List the repositories of every configured organization"
	listCommandLongConstant  = "list refreshes the cached repository listings and prints every repository name, grouped by organization."
)

// BuildListCommand constructs the cobra command printing the organization listings.
func (builder *CommandBuilder) BuildListCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     listCommandUseConstant,
		Aliases: []string{listCommandAliasConstant},
		Short:   listCommandShortConstant,
		Long:    listCommandLongConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.runList,
	}
	return command, nil
}

func (builder *CommandBuilder) runList(command *cobra.Command, _ []string) error {
	service, serviceError := builder.resolveService(utils.NewFlushingWriter(command.OutOrStdout()), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.List(command.Context())
}
