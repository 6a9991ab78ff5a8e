package modules

import (
	"github.com/spf13/cobra"

	"github.com/temirov/y2m/internal/hosting"
)

const (
	cloneCommandUseConstant      = "clone [ALL | FAV | module ...]"
	cloneCommandAliasConstant    = "cl"
	cloneCommandShortConstant    = "Check out modules over ssh"
	cloneCommandLongConstant     = "clone checks out the selected modules with write access over ssh, converting each shallow clone into a full checkout."
	readOnlyCommandUseConstant   = "read-only [ALL | FAV | module ...]"
	readOnlyCommandAliasConstant = "ro"
	readOnlyCommandShortConstant = "Check out modules over anonymous https"
	readOnlyCommandLongConstant  = "read-only checks out the selected modules without write access, converting each shallow clone into a full checkout."
)

// BuildCloneCommand constructs the cobra command cloning modules over ssh.
func (builder *CommandBuilder) BuildCloneCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     cloneCommandUseConstant,
		Aliases: []string{cloneCommandAliasConstant},
		Short:   cloneCommandShortConstant,
		Long:    cloneCommandLongConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runClone(command, arguments, hosting.RemoteSchemeSSH)
		},
	}
	return command, nil
}

// BuildReadOnlyCommand constructs the cobra command cloning modules over https.
func (builder *CommandBuilder) BuildReadOnlyCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     readOnlyCommandUseConstant,
		Aliases: []string{readOnlyCommandAliasConstant},
		Short:   readOnlyCommandShortConstant,
		Long:    readOnlyCommandLongConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runClone(command, arguments, hosting.RemoteSchemeReadOnly)
		},
	}
	return command, nil
}

func (builder *CommandBuilder) runClone(command *cobra.Command, arguments []string, scheme hosting.RemoteScheme) error {
	service, serviceError := builder.resolveService(command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.Clone(command.Context(), ParseModuleSelection(arguments), scheme)
}
