package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipaste/aipaste/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "create a starter configuration file"
	initLongDescription  = `Write a starter .aipaste.yaml listing every supported setting.
The file lands in the current directory, or under ~/.aipaste with --global.`

	globalFlagName             = "global"
	globalFlagDescription      = "write the configuration under the home directory"
	initForceFlagDescription   = "overwrite an existing configuration file"
	configurationCreatedFormat = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationCreatedFormat, destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, initForceFlagDescription)
	return initCommand
}
