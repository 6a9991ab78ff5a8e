package modules

import (
	"github.com/spf13/cobra"
)

const (
	checkoutCommandUseConstant         = "checkout <branch> [FAV | module ...]"
	checkoutCommandFirstAliasConstant  = "co"
	checkoutCommandSecondAliasConstant = "br"
	checkoutCommandShortConstant       = "Switch checked out modules to a branch or tag"
	checkoutCommandLongConstant        = "checkout switches the selected modules to the given branch or tag. Without module arguments every checked out module is switched."
)

// BuildCheckoutCommand constructs the cobra command switching checkouts to a branch.
func (builder *CommandBuilder) BuildCheckoutCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     checkoutCommandUseConstant,
		Aliases: []string{checkoutCommandFirstAliasConstant, checkoutCommandSecondAliasConstant},
		Short:   checkoutCommandShortConstant,
		Long:    checkoutCommandLongConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE:    builder.runCheckout,
	}
	return command, nil
}

func (builder *CommandBuilder) runCheckout(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.resolveService(command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.Checkout(command.Context(), arguments[0], ParseModuleSelection(arguments[1:]))
}
