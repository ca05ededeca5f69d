package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetherfs/tether/cmd"
	"github.com/tetherfs/tether/pkg/tether/command"
)

func statusMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("exactly one identifier argument is required")
	}

	response, err := dispatch(command.Request{Action: "update", Arg: arguments[0]})
	if err != nil {
		return err
	}

	fmt.Println(string(response))
	return nil
}

var statusCommand = &cobra.Command{
	Use:   "status <id>",
	Short: "Print the current reconciliation state of a registered file",
	Run:   cmd.Mainify(statusMain),
}
