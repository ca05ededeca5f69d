package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetherfs/tether/cmd"
	"github.com/tetherfs/tether/pkg/tether/command"
)

func tagMain(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("exactly one path argument is required")
	}

	response, err := dispatch(command.Request{Action: "get_tag", Arg: arguments[0]})
	if err != nil {
		return err
	}

	fmt.Println(string(response))
	return nil
}

var tagCommand = &cobra.Command{
	Use:   "tag <path>",
	Short: "Query the durable tag stored at a path, without registering it",
	Run:   cmd.Mainify(tagMain),
}
