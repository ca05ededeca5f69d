package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetherfs/tether/cmd"
	"github.com/tetherfs/tether/pkg/tether/command"
)

func registerMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("exactly one path argument is required")
	}

	response, err := dispatch(command.Request{Action: "register", Arg: arguments[0]})
	if err != nil {
		return err
	}

	fmt.Println(string(response))
	return nil
}

var registerCommand = &cobra.Command{
	Use:   "register <path>",
	Short: "Register a file for identity tracking",
	Run:   cmd.Mainify(registerMain),
}
