package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetherfs/tether/pkg/tether"
)

func rootMain(command *cobra.Command, arguments []string) {
	if rootConfiguration.version {
		fmt.Println(tether.Version)
		return
	}
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "tether",
	Short: "Tether tracks persistent file identity across renames and moves.",
	Run:   rootMain,
}

var rootConfiguration struct {
	help    bool
	version bool
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		daemonCommand,
		registerCommand,
		tagCommand,
		statusCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
