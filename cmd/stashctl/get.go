package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Resolve the download URL for a stored file",
		Example: `  stashctl get docs/report.pdf
  stashctl get --profile staging docs/report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, log, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			file, err := runtime.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(file.URL)
			return nil
		},
	}
}
